package main

import "github.com/toxiclabs/payment-alerts/cmd"

func main() {
	cmd.Execute()
}
