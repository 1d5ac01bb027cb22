package testdata

import (
	"fmt"
	"strings"
)

// RoundTrip is the smallest chart with two beats sharing an offset
const RoundTrip = "120\n100,D,0\n100,F,1,500\n200,J,0"

// MetadataOnly has a tempo and nothing to play
const MetadataOnly = "120"

// Malformed has one good beat and one broken beat per kind of failure
const Malformed = `128
abc,D,0
100,X,0
150,F,7
200,J,1,long
-40,K,0
250,K
300,Space,1
350,D,0,90
400, Space , 0 
`

// Windows line endings, blank lines and a trailing newline
const Messy = "90\r\n\r\n1000,D,0\r\n\r\n2000,K,1,250\r\n"

// Chart builds a chart with count taps stepping through the lanes, gap ms
// apart starting at gap
func Chart(count, gap int) string {
	lanes := []string{"D", "F", "Space", "J", "K"}
	var b strings.Builder
	b.WriteString("120\n")
	for i := 0; i < count; i++ {
		fmt.Fprintf(&b, "%d,%s,0\n", (i+1)*gap, lanes[i%len(lanes)])
	}
	return b.String()
}
