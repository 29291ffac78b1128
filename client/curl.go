package client

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/alessio/shellescape"
)

// Request bodies above this size, or non-text bodies, are summarized rather
// than echoed.
const maxEchoedBodyBytes = 1000

type curlCommand []string

func (b *curlCommand) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b curlCommand) String() string {
	return strings.Join(b, " ")
}

// curlCommandFor renders a request as a runnable curl command line, so the
// debug output of a failed stage can be replayed by hand.
func curlCommandFor(req *http.Request, cred Credential, body []byte) string {
	var cmd curlCommand
	cmd.add("curl", "-s", "-X", req.Method)
	if cred != (Credential{}) {
		cmd.add("-u", cred.Username+":"+cred.Password)
	}

	keys := make([]string, 0, len(req.Header))
	for k := range req.Header {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range req.Header.Values(k) {
			cmd.add("-H", k+": "+v)
		}
	}

	if len(body) > 0 {
		if len(body) <= maxEchoedBodyBytes && utf8.Valid(body) {
			cmd.add("--data-binary", string(body))
		} else {
			cmd = append(cmd, fmt.Sprintf("--data-binary '<%d bytes>'", len(body)))
		}
	}

	cmd.add(req.URL.String())
	return cmd.String()
}
