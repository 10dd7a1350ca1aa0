// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/creative-designer/cdlib/cmd/cdlib"

func main() {
	cmd.Execute()
}
