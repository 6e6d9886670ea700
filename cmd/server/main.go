package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/coder/websocket"

	"github.com/draftline/floorplan-engine/internal/geometry"
	"github.com/draftline/floorplan-engine/internal/plan"
	"github.com/draftline/floorplan-engine/internal/protocol"
	"github.com/draftline/floorplan-engine/internal/web/views"
	"github.com/draftline/floorplan-engine/internal/ws"
)

// seedDemoPlan draws a 16x12 foot room and places a few fixtures through the
// engine so the initial state is the product of the same operations the
// drafting surface would issue.
func seedDemoPlan(state *PlanState, engine PlanEngine, logger Logger) {
	// 16' = 320 units, 12' = 240 units at the fixed scale.
	corners := []geometry.Point{
		{X: 0, Y: 0},
		{X: 320, Y: 0},
		{X: 320, Y: 240},
		{X: 0, Y: 240},
	}
	state.Lock.Lock()
	var wallIDs []plan.WallID
	for i := range corners {
		w := state.Arena.NewWall(corners[i], corners[(i+1)%len(corners)])
		wallIDs = append(wallIDs, w.ID)
	}
	state.Lock.Unlock()

	seeds := []protocol.RequestPlaceFixture{
		{WallID: int(wallIDs[0]), Width: 3, Height: 6.8, Category: string(plan.CategoryDoor), IsOpening: true},
		{WallID: int(wallIDs[1]), Width: 4, Height: 3.5, Category: string(plan.CategoryWindow), IsOpening: true},
		{WallID: int(wallIDs[2]), Width: 2.5, Height: 3, Category: string(plan.CategoryCabinet)},
	}
	for _, req := range seeds {
		if _, err := engine.ProcessPlaceFixture(req); err != nil {
			logger.Printf("seeding %s on wall %d failed: %v", req.Category, req.WallID, err)
		}
	}
}

func main() {
	logger := NewLogger()
	state := NewPlanState("demo-plan", plan.DefaultParams())
	engine := NewPlanEngine(state, logger)
	seedDemoPlan(state, engine, logger)

	hub := ws.NewHub(3 * time.Second)
	broadcaster := NewBroadcaster(hub, NewSequenceGenerator())
	handlers := NewIntentHandlers(engine, broadcaster, logger)

	mux := http.NewServeMux()

	mux.HandleFunc("/stream", func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
		if err != nil {
			return
		}
		hub.Add(conn)
		logger.Printf("surface connected (%d total)", hub.Count())

		hello, _ := json.Marshal(protocol.PatchEnvelope{
			Sequence: 0,
			EventID:  0,
			Type:     "PlanSnapshot",
			Payload:  engine.Snapshot(),
		})
		_ = conn.Write(context.Background(), websocket.MessageText, hello)

		go func(c *websocket.Conn) {
			defer hub.Remove(c)
			defer c.Close(websocket.StatusNormalClosure, "")
			for {
				_, data, err := c.Read(context.Background())
				if err != nil {
					return
				}
				if err := handlers.HandleMessage(data); err != nil {
					logger.Printf("intent failed: %v", err)
				}
			}
		}(conn)
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if err := views.IndexPage(engine.Snapshot()).Render(r.Context(), w); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("listening on :%s", port)
	log.Fatal(http.ListenAndServe(":"+port, mux))
}
