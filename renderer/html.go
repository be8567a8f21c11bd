package renderer

import (
	"bytes"
	"fmt"
	"log"

	"github.com/yuin/goldmark"
)

// htmlTemplate wraps the converted digest body; kept minimal so it renders
// the same in every mail client.
const htmlTemplate = `<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
%s
<hr>
<p style="font-size: 12px; color: #666;">This is an automated message from your stock tracker.</p>
</body>
</html>
`

// HTML converts the markdown digest into the HTML body of the alert email.
// On conversion failure it returns the empty string: the plain-text body is
// always present and sufficient.
func HTML(markdown string) string {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		log.Printf("cannot render HTML body, sending text only: %v", err)
		return ""
	}
	return fmt.Sprintf(htmlTemplate, buf.String())
}
