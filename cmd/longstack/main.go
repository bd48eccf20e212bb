package main

import "github.com/alibaba/longstack/pkg/console/cmd"

func main() {
	cmd.Execute()
}
