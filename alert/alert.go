/*
Package alert composes the low-stock notification and runs it on a schedule.

COMPOSE:
  Given the low-stock snapshots (inventory.LowStockEntries), Compose builds
  a localized notification listing the distinct product names in the order
  they first appear. No entries means no notification.

DELIVERY:
  Notifications are simulated: the scheduler logs them and keeps the most
  recent one for GET /api/alerts/latest. Nothing is sent.

SEE ALSO:
  - scheduler.go: cron job
  - inventory/resolver.go: LowStockEntries
*/
package alert

import (
	"strings"
	"time"

	"github.com/nissili/inventory-dashboard/inventory"
	"github.com/nissili/inventory-dashboard/locale"
)

// Notification is one composed low-stock alert.
type Notification struct {
	To        string
	Subject   string
	Products  []string
	Body      string
	Lang      locale.Lang
	CreatedAt time.Time
}

// Compose builds the alert for entries. ok is false when entries is empty.
func Compose(entries []inventory.Row, lang locale.Lang, to string) (*Notification, bool) {
	if len(entries) == 0 {
		return nil, false
	}

	products := distinctProducts(entries)

	var b strings.Builder
	b.WriteString(locale.Text(locale.KeyAlertIntro, lang))
	b.WriteString("\n")
	b.WriteString(strings.Join(products, ", "))
	b.WriteString("\n\n")
	b.WriteString(locale.Text(locale.KeyAlertAction, lang))
	b.WriteString("\n")
	b.WriteString(locale.Text(locale.KeyAlertFooter, lang))

	return &Notification{
		To:        to,
		Subject:   locale.Text(locale.KeyAlertSubject, lang),
		Products:  products,
		Body:      b.String(),
		Lang:      lang,
		CreatedAt: time.Now().UTC(),
	}, true
}

func distinctProducts(entries []inventory.Row) []string {
	seen := make(map[string]struct{}, len(entries))
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.Product]; ok {
			continue
		}
		seen[e.Product] = struct{}{}
		out = append(out, e.Product)
	}
	return out
}
