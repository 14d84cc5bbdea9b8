/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package urlutil

import (
	"strings"
)

// IsTLSEnabled expects a URL and returns true if its scheme is https
func IsTLSEnabled(url string) bool {
	return strings.HasPrefix(strings.ToLower(url), "https://")
}

//HasProtocol is a utility function which verifies if protocol is provided in URL
func HasProtocol(url string) bool {
	return strings.Contains(url, "://")
}
