package main

import (
	"fmt"
	"strings"
)

// GenerateCatalog renders the Go source for an action catalog.
func GenerateCatalog(catalog *RawCatalog) (string, error) {
	data := catalogData{
		Namespace: catalog.Namespace,
		Actions:   catalog.Actions,
	}
	for _, action := range catalog.Actions {
		if !validActionName(action.Name) {
			return "", fmt.Errorf("action %q does not form a Go identifier", action.Name)
		}
		if action.Implemented {
			data.Implemented = append(data.Implemented, action.Name)
		}
	}

	var b strings.Builder
	renderTemplate(&b, "catalog", data)
	return b.String(), nil
}

// validActionName reports whether a name concatenates into a Go
// identifier like ActionGetServices.
func validActionName(name string) bool {
	for i, r := range name {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return name != ""
}
