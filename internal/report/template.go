package report

import "html/template"

var pageTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Discord Recap {{.TargetYear}}</title>
<style>
  body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; background: #313338; color: #dbdee1; margin: 0; }
  .wrap { max-width: 960px; margin: 0 auto; padding: 32px 16px; }
  h1 { color: #fff; }
  h2 { color: #f2f3f5; border-bottom: 1px solid #3f4147; padding-bottom: 8px; margin-top: 40px; }
  .cards { display: flex; flex-wrap: wrap; gap: 16px; }
  .card { background: #2b2d31; border-radius: 8px; padding: 20px; flex: 1 1 180px; }
  .card .num { font-size: 2em; font-weight: 700; color: #5865f2; }
  .card .label { color: #949ba4; margin-top: 4px; }
  table { width: 100%; border-collapse: collapse; }
  th, td { text-align: left; padding: 8px 12px; border-bottom: 1px solid #3f4147; }
  th { color: #949ba4; font-weight: 600; }
  td.num { text-align: right; font-variant-numeric: tabular-nums; }
  .footer { color: #6d7178; margin-top: 48px; font-size: 0.85em; }
</style>
</head>
<body>
<div class="wrap">
  <h1>Your {{.TargetYear}} Discord Recap</h1>

  <div class="cards">
    <div class="card"><div class="num">{{.Summary.TotalMessages}}</div><div class="label">messages</div></div>
    <div class="card"><div class="num">{{.Summary.AttachmentMessages}}</div><div class="label">with attachments</div></div>
    <div class="card"><div class="num">{{.Summary.DistinctEmotes}}</div><div class="label">distinct emotes</div></div>
    <div class="card"><div class="num">{{.Summary.Servers}}</div><div class="label">servers</div></div>
    <div class="card"><div class="num">{{.Summary.DMs}}</div><div class="label">DMs</div></div>
    <div class="card"><div class="num">{{.Summary.GroupDMs}}</div><div class="label">group DMs</div></div>
  </div>

  {{if .Servers}}
  <h2>Servers</h2>
  <table>
    <tr><th>Server</th><th class="num">Messages</th><th class="num">With attachments</th></tr>
    {{range .Servers}}
    <tr><td>{{.Name}}</td><td class="num">{{.Messages}}</td><td class="num">{{.AttachmentMessages}}</td></tr>
    {{end}}
  </table>
  {{end}}

  {{if .DMs}}
  <h2>Direct messages</h2>
  <table>
    <tr><th>With</th><th class="num">Messages</th><th class="num">With attachments</th></tr>
    {{range .DMs}}
    <tr><td>{{.DisplayName}}</td><td class="num">{{.Messages}}</td><td class="num">{{.AttachmentMessages}}</td></tr>
    {{end}}
  </table>
  {{end}}

  {{if .GroupDMs}}
  <h2>Group DMs</h2>
  <table>
    <tr><th>Members</th><th class="num">Messages</th><th class="num">With attachments</th></tr>
    {{range .GroupDMs}}
    <tr><td>{{.MemberList}}</td><td class="num">{{.Messages}}</td><td class="num">{{.AttachmentMessages}}</td></tr>
    {{end}}
  </table>
  {{end}}

  {{if .Emotes}}
  <h2>Emotes</h2>
  <table>
    <tr><th>Emote</th><th class="num">Uses</th></tr>
    {{range .Emotes}}
    <tr><td>:{{.Name}}:</td><td class="num">{{.Uses}}</td></tr>
    {{end}}
  </table>
  {{end}}

  {{if .FileTypes}}
  <h2>Attachment file types</h2>
  <table>
    <tr><th>Extension</th><th class="num">Files</th></tr>
    {{range .FileTypes}}
    <tr><td>.{{.Extension}}</td><td class="num">{{.Count}}</td></tr>
    {{end}}
  </table>
  {{end}}

  <div class="footer">Generated {{.GeneratedAt.Format "2006-01-02 15:04:05"}}</div>
</div>
</body>
</html>
`))
