// SPDX-License-Identifier: MPL-2.0

package main

import cmd "mapvault-cli/cmd/mapvault"

func main() {
	cmd.Execute()
}
