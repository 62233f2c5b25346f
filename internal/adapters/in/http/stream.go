package http

import (
	"net/http"

	"posrelay/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// StreamEvents handles GET /api/stream - holds the connection open and writes
// every frame of one subscription until the client leaves or the broadcaster
// drops it.
func (s *Server) StreamEvents(ctx echo.Context) error {
	sub, err := s.events.Subscribe()
	if err != nil {
		logAttrsError(s.logger, ctx, "Failed to subscribe viewer", err)
		return ctx.JSON(http.StatusServiceUnavailable, servers.Error{Error: "Event stream unavailable"})
	}
	defer s.events.Unsubscribe(sub.ID())

	res := ctx.Response()
	header := res.Header()
	header.Set(echo.HeaderContentType, "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	done := ctx.Request().Context().Done()
	for {
		select {
		case <-done:
			return nil
		case frame, ok := <-sub.Frames():
			if !ok {
				return nil
			}
			if _, err := res.Write(frame); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}
