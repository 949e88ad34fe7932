package server

import "html/template"

// pageTemplates holds every HTML page the server renders. Templates are
// compiled in so the binary has no runtime file dependencies.
var pageTemplates = template.Must(parseAll())

func parseAll() (*template.Template, error) {
	root := template.New("")
	if _, err := root.Parse(styleHTML); err != nil {
		return nil, err
	}
	for name, text := range map[string]string{
		"index.html":       indexHTML,
		"run.html":         runHTML,
		"run_pending.html": runPendingHTML,
		"error.html":       errorHTML,
	} {
		if _, err := root.New(name).Parse(text); err != nil {
			return nil, err
		}
	}
	return root, nil
}

const indexHTML = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Address Mapper</title>{{template "style" .}}</head>
<body>
<h1>Address Mapper</h1>
<p>Upload a CSV file of postal addresses. Each row is geocoded and shown on an interactive map.</p>
<form action="/runs" method="post" enctype="multipart/form-data">
  <input type="file" name="file" accept=".csv" required>
  <button type="submit">Process Addresses</button>
</form>
<h2>Expected columns</h2>
<p><code>{{range $i, $c := .RequiredColumns}}{{if $i}}, {{end}}{{$c}}{{end}}</code></p>
<h2>Sample</h2>
<pre>account_id,street,city,state,zipcode
ACC001,1600 Amphitheatre Parkway,Mountain View,CA,94043
ACC002,1 Apple Park Way,Cupertino,CA,95014</pre>
</body>
</html>
`

const runPendingHTML = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Processing…</title>{{template "style" .}}</head>
<body>
<h1>Processing addresses…</h1>
<progress id="bar" max="1" value="0"></progress>
<p id="status">starting…</p>
<script>
  var timer = setInterval(function () {
    fetch('/runs/{{.RunID}}/progress')
      .then(function (r) { return r.json(); })
      .then(function (p) {
        document.getElementById('bar').value = p.fraction;
        document.getElementById('status').textContent =
          'Geocoded ' + p.done + ' of ' + p.total + ' addresses';
        if (p.state === 'completed') {
          clearInterval(timer);
          window.location.reload();
        }
      });
  }, 500);
</script>
</body>
</html>
`

const runHTML = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Geocoding Results</title>{{template "style" .}}</head>
<body>
<h1>Geocoding Results</h1>
{{if .Warning}}<p class="warning">{{.Warning}}</p>{{end}}
<ul>
  <li>Total addresses: {{.Total}}</li>
  <li>Successfully geocoded: {{.Succeeded}}</li>
  <li>Failed to geocode: {{len .Failed}}</li>
</ul>
<p><a href="/runs/{{.RunID}}/download">Download processed data (CSV)</a> · <a href="/">Upload another file</a></p>
{{if .Failed}}
<h2>Failed addresses</h2>
<table>
  <tr><th>Account ID</th><th>Address</th><th>Detail</th></tr>
  {{range .Failed}}
  <tr><td>{{.Record.AccountID}}</td><td>{{.Record.FullAddress}}</td><td>{{.ErrorDetail}}</td></tr>
  {{end}}
</table>
{{end}}
{{if .HasMap}}
<h2>Address map</h2>
<iframe src="/runs/{{.RunID}}/map" width="100%" height="600" style="border:1px solid #ccc;"></iframe>
{{end}}
</body>
</html>
`

const errorHTML = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Error</title>{{template "style" .}}</head>
<body>
<h1>Something went wrong</h1>
<p class="warning">{{.Message}}</p>
<p><a href="/">Back to upload</a></p>
</body>
</html>
`

const styleHTML = `{{define "style"}}<style>
body { font-family: sans-serif; max-width: 60rem; margin: 2rem auto; padding: 0 1rem; }
table { border-collapse: collapse; }
td, th { border: 1px solid #ccc; padding: 0.3rem 0.6rem; text-align: left; }
.warning { color: #b45309; }
progress { width: 100%; height: 1.2rem; }
</style>{{end}}`
