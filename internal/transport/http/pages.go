package http

import (
	"html/template"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
)

const indexHTML = `<!DOCTYPE html>
<html>
<head><title>Pitwall Telemetry Relay</title></head>
<body>
  <h1>Pitwall Telemetry Relay</h1>
  <p>Server is running and waiting for monitor connections.</p>
  <p>Dashboard URLs are generated when a monitor requests a session.</p>
</body>
</html>
`

var dashboardTmpl = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head><title>Session {{.SessionID}}</title></head>
<body data-session-id="{{.SessionID}}">
  <h1>Session {{.SessionID}}</h1>
  <p id="status">Waiting for telemetry&hellip;</p>
</body>
</html>
`))

func indexPage(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(stdhttp.StatusOK, indexHTML)
}

func dashboardPage(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(stdhttp.StatusOK)
	_ = dashboardTmpl.Execute(c.Writer, gin.H{"SessionID": c.Param("session_id")})
}
