package services

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/whatsuprobl9x-arch/novaurl/internal/models"
)

// redirectDelayMS is how long an interstitial page is shown before the
// browser is sent to the destination.
const redirectDelayMS = 3000

const defaultInterstitial = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Loading...</title>
    <style>
        body {
            margin: 0;
            padding: 0;
            background: white;
            display: flex;
            justify-content: center;
            align-items: center;
            height: 100vh;
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
        }
        .loading {
            text-align: center;
        }
        .spinner {
            border: 4px solid #f3f3f3;
            border-top: 4px solid #007bff;
            border-radius: 50%;
            width: 40px;
            height: 40px;
            animation: spin 1s linear infinite;
            margin: 0 auto 20px;
        }
        @keyframes spin {
            0% { transform: rotate(0deg); }
            100% { transform: rotate(360deg); }
        }
        h1 {
            color: #333;
            font-size: 24px;
            margin: 0;
        }
    </style>
</head>
<body>
    <div class="loading">
        <div class="spinner"></div>
        <h1>Loading...</h1>
    </div>
    <script>
        setTimeout(() => {
            window.location.href = {{.Destination}};
        }, {{.DelayMS}});
    </script>
</body>
</html>
`

var interstitialTmpl = template.Must(template.New("interstitial").Parse(defaultInterstitial))

// redirectScript builds the auto-redirect snippet spliced into custom pages.
func redirectScript(destination string) string {
	return fmt.Sprintf("<script>setTimeout(() => { window.location.href = %q; }, %d);</script>", destination, redirectDelayMS)
}

// InjectRedirect places the auto-redirect script before the last closing
// body tag of page, or appends it when the tag is absent. Exactly one script
// is injected regardless of how many body tags the upload contains.
func InjectRedirect(page, destination string) string {
	script := redirectScript(destination)
	if idx := strings.LastIndex(page, "</body>"); idx >= 0 {
		return page[:idx] + script + page[idx:]
	}
	return page + script
}

// RenderInterstitial produces the HTML served for a resolved link: the
// uploaded page with the redirect spliced in, or the stock loading page.
// Uploaded HTML is passed through verbatim.
func RenderInterstitial(link models.Link) ([]byte, error) {
	if link.HasCustomHTML() {
		return []byte(InjectRedirect(*link.CustomHTML, link.RedirectURL)), nil
	}

	var buf bytes.Buffer
	data := struct {
		Destination string
		DelayMS     int
	}{link.RedirectURL, redirectDelayMS}
	if err := interstitialTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render interstitial: %w", err)
	}
	return buf.Bytes(), nil
}
