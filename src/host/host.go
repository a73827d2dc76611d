//Package host holds the embedding glue between the simulation and
//whatever surface displays it - the core consumes nothing from here
package host

import "fmt"

//AlertFunc is a one-shot text display callback supplied by the host
type AlertFunc func(msg string)

//Greet formats the greeting for the given name and hands it to the
//host's alert callback
func Greet(alert AlertFunc, name string) {
	if alert == nil {
		return
	}
	alert(fmt.Sprintf("Hello, this is %s golife!", name))
}
