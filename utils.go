/* utils.go
 * Utility functions used across the application
 * Authors: Zachary Bower
 */

package main

import (
	"fmt"
	"strconv"
	"strings"
)

// convertStrToBool converts a command line flag value into a boolean
// Preconditions: Receives a string such as true, false, 1 or 0 (case insensitive)
// Postconditions: Returns boolean value or an error if the string is not a boolean
func convertStrToBool(str string) (bool, error) {
	value, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(str)))
	if err != nil {
		return false, fmt.Errorf("invalid boolean string %q", str)
	}
	return value, nil
}
