package http

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// epochWindow describes a non-negative offset/limit page over the epoch list.
type epochWindow struct {
	Offset int
	Limit  int
	Total  int
}

// setEpochLinkHeaders adds RFC 8288 Link headers and X-Total-Count for a
// paged /epochs request. Windows using negative offsets or limits index
// from the end of the list and get no links.
func setEpochLinkHeaders(c *fiber.Ctx, offset, limit *int, total int) {
	c.Set("X-Total-Count", strconv.Itoa(total))
	if limit == nil || *limit <= 0 {
		return
	}
	w := epochWindow{Limit: *limit, Total: total}
	if offset != nil {
		if *offset < 0 {
			return
		}
		w.Offset = *offset
	}

	base := c.Path()
	link := func(offset int, rel string) string {
		return fmt.Sprintf(`<%s?offset=%d&limit=%d>; rel="%s"`, base, offset, w.Limit, rel)
	}

	links := []string{link(0, "first")}
	if w.Offset > 0 {
		prev := w.Offset - w.Limit
		if prev < 0 {
			prev = 0
		}
		links = append(links, link(prev, "prev"))
	}
	if w.Offset < w.Total-w.Limit {
		links = append(links, link(w.Offset+w.Limit, "next"))
	}
	last := w.Total - w.Limit
	if last < 0 {
		last = 0
	}
	links = append(links, link(last, "last"))

	c.Set(fiber.HeaderLink, strings.Join(links, ", "))
}
