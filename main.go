/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/dnum-mi/grist-sync-plugin/cmd"

func main() {
	cmd.Execute()
}
