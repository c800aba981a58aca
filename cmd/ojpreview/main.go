// Command ojpreview renders problem statements in their restricted preview form.
package main

import "github.com/ojroom/preview/internal/commands"

func main() {
	commands.Execute()
}
