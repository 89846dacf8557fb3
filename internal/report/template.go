package report

import "html/template"

var pageTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>{{.Title}}</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Oxygen, Ubuntu, Cantarell, sans-serif;
            line-height: 1.6;
            max-width: 800px;
            margin: 0 auto;
            padding: 20px;
            background-color: #f8f9fa;
            color: #333;
        }
        h1, h2 {
            color: #2c3e50;
            border-bottom: 2px solid #3498db;
            padding-bottom: 10px;
        }
        audio {
            width: 100%;
            margin: 20px 0;
        }
        pre {
            background-color: #f4f4f4;
            border: 1px solid #ddd;
            border-radius: 4px;
            padding: 15px;
            overflow-x: auto;
            font-size: 14px;
        }
        i {
            color: #7f8c8d;
            font-style: italic;
        }
        p {
            margin-bottom: 16px;
        }
        ul, ol {
            margin-bottom: 16px;
            padding-left: 30px;
        }
        li {
            margin-bottom: 8px;
        }
        code {
            background-color: #f1f2f6;
            padding: 2px 4px;
            border-radius: 3px;
            font-family: 'Monaco', 'Menlo', 'Ubuntu Mono', monospace;
        }
        table.irclog {
            width: 100%;
            border-collapse: collapse;
        }
        table.irclog th, table.irclog td {
            padding: 8px;
            text-align: left;
            vertical-align: top;
        }
        table.irclog td.nick {
            font-weight: bold;
            text-align: right;
        }
    </style>
</head>
<body>
    <h1>{{.Heading}}</h1>
{{- if .AudioFile}}
    <h2>Audio Summary</h2>
    <audio src="{{.AudioFile}}" controls></audio>
{{- end}}
{{- if .Summary}}
    <h2>Summary</h2>
    {{.Summary}}
    {{- if .Thinking}}
    <h2>Thinking</h2>
    <i>{{range .Thinking}}<p>{{.}}</p>{{end}}</i>
    {{- end}}
{{- end}}
    <h2>Chat</h2>
    <table class="irclog">
{{- range .Rows}}
        <tr id="t{{.ID}}">
            <td class="time">{{.Time}}</td>
            <td class="nick">{{.Nick}}</td>
            <td class="text">{{.Text}}</td>
        </tr>
{{- end}}
    </table>
</body>
</html>
`))
