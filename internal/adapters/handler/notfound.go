package handler

import (
	"html/template"
	"net/http"
)

// Friendly page for redirect misses, rendered instead of a bare 404 so a
// mistyped or deleted short link still lands somewhere useful.
var notFoundPage = template.Must(template.New("notfound").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Link Not Found - TinyLink</title>
  <style>
    * { margin: 0; padding: 0; box-sizing: border-box; }
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', 'Roboto', sans-serif;
      background: #f3f4f6;
      min-height: 100vh;
      display: flex;
      align-items: center;
      justify-content: center;
      padding: 20px;
    }
    .container {
      background: white;
      border-radius: 16px;
      padding: 48px 32px;
      max-width: 500px;
      text-align: center;
      box-shadow: 0 10px 30px rgba(0,0,0,0.1);
    }
    h1 { font-size: 32px; color: #1f2937; margin-bottom: 12px; }
    p { font-size: 16px; color: #6b7280; margin-bottom: 24px; line-height: 1.5; }
    .code {
      background: #f3f4f6;
      padding: 8px 16px;
      border-radius: 8px;
      font-family: monospace;
      font-weight: 600;
      color: #ef4444;
      display: inline-block;
    }
  </style>
</head>
<body>
  <div class="container">
    <h1>Link Not Found</h1>
    <p>The short link you're looking for doesn't exist or has been deleted.</p>
    <div class="code">{{.Code}}</div>
  </div>
</body>
</html>`))

func renderNotFound(w http.ResponseWriter, code string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_ = notFoundPage.Execute(w, struct{ Code string }{Code: code})
}
