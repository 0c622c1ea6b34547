// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/shaderkit/openinclude/cmd/openinclude"

func main() {
	cmd.Execute()
}
