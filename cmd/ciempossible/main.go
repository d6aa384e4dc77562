package main

import (
	"fmt"

	"github.com/PaloAltoNetworks/CIEMPossible/pkg/auth_handling"
)

func main() {
	banner := `
	  ___ ___ ___ __  __ ___           _ _    _
	 / __|_ _| __|  \/  | _ \___ _____(_) |__| |___
	| (__ | || _|| |\/| |  _/ _ (_-<_-< | '_ \ / -_)
	 \___|___|___|_|  |_|_| \___/__/__/_|_.__/_\___|

`
	fmt.Println(banner)
	config := auth_handling.Authenticator()
	Collect(config)
	if config.ShouldAdvise {
		Advise()
	}
}

// Potential additions:
// - group assignments (PrincipalType GROUP) with membership expansion
// - historical trends across runs, diffing against the previous report
// - customer-managed policy references and permission boundaries
