package views

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/draftline/floorplan-engine/internal/protocol"
)

// IndexPage renders the drafting canvas shell with the initial snapshot
// embedded for the client-side renderer. Live updates arrive over /stream.
func IndexPage(s protocol.Snapshot) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		// encoding/json escapes <, > and & so the payload is safe inside a
		// script element.
		snapshot, err := json.Marshal(s)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, pageHead); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "<script id=\"plan-snapshot\" type=\"application/json\">%s</script>\n", snapshot); err != nil {
			return err
		}
		_, err = io.WriteString(w, pageBody)
		return err
	})
}

const pageHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8"/>
<title>Floor Plan</title>
<style>
  body { margin: 0; font-family: system-ui, sans-serif; background: #f4f1ea; }
  #status { position: fixed; bottom: 0; left: 0; right: 0; padding: 4px 10px;
            background: #2b2b2b; color: #ddd; font-size: 12px; }
  canvas { display: block; }
</style>
</head>
<body>
`

const pageBody = `<canvas id="plan"></canvas>
<div id="status">connecting…</div>
<script>
(() => {
  const canvas = document.getElementById("plan");
  const status = document.getElementById("status");
  const ctx = canvas.getContext("2d");
  const state = JSON.parse(document.getElementById("plan-snapshot").textContent);

  function resize() {
    canvas.width = window.innerWidth;
    canvas.height = window.innerHeight - 24;
    render();
  }

  function render() {
    ctx.clearRect(0, 0, canvas.width, canvas.height);
    ctx.save();
    ctx.translate(40, 40);
    for (const wall of state.walls) {
      for (const seg of wall.segments) {
        ctx.beginPath();
        ctx.moveTo(seg.start.x, seg.start.y);
        ctx.lineTo(seg.end.x, seg.end.y);
        if (seg.type === "wall") {
          ctx.strokeStyle = "#333";
          ctx.lineWidth = 6;
          ctx.setLineDash([]);
        } else {
          ctx.strokeStyle = "#b22";
          ctx.lineWidth = 2;
          ctx.setLineDash([4, 4]);
        }
        ctx.stroke();
      }
      const mx = (wall.start.x + wall.end.x) / 2;
      const my = (wall.start.y + wall.end.y) / 2;
      ctx.setLineDash([]);
      ctx.fillStyle = "#555";
      ctx.font = "12px sans-serif";
      ctx.fillText(wall.display, mx + 6, my - 6);
    }
    ctx.restore();
  }

  function applyPatch(env) {
    const p = env.payload;
    switch (env.type) {
      case "PlanSnapshot":
        state.walls = p.walls || [];
        state.fixtures = p.fixtures || [];
        break;
      case "WallUpdated":
        state.walls = state.walls.map(w => w.id === p.wall.id ? p.wall : w);
        break;
      case "WallsSplit":
        state.walls = state.walls.filter(w => w.id !== p.wallId).concat(p.fragments);
        break;
      case "WallsMerged":
        state.walls = state.walls.filter(w => !p.fragmentIds.includes(w.id)).concat([p.wall]);
        break;
      case "FixtureUpdated":
        state.fixtures = state.fixtures.filter(f => f.id !== p.fixture.id).concat([p.fixture]);
        break;
      case "FixtureRemoved":
        state.fixtures = state.fixtures.filter(f => f.id !== p.fixtureId);
        break;
      case "PlacementRejected":
        status.textContent = "rejected: " + p.reason;
        return;
    }
    render();
  }

  const proto = location.protocol === "https:" ? "wss:" : "ws:";
  const sock = new WebSocket(proto + "//" + location.host + "/stream");
  sock.onopen = () => { status.textContent = "connected"; };
  sock.onclose = () => { status.textContent = "disconnected"; };
  sock.onmessage = (ev) => { applyPatch(JSON.parse(ev.data)); };

  window.addEventListener("resize", resize);
  resize();
})();
</script>
</body>
</html>
`
