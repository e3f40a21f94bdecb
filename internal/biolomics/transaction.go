package biolomics

import (
	"context"

	"github.com/mirri-tools/strainsync/internal/errors"
)

// The transaction is a client-side construct: a LIFO log of creations that
// Rollback undoes by deleting them newest first. The catalog itself has no
// transaction support.

// StartTransaction begins logging creations. Nesting is not supported.
func (c *Client) StartTransaction() error {
	if c.txActive {
		return errors.New(errors.ErrTransactionNested).
			Category(errors.CategoryState).Component("biolomics").Build()
	}
	c.txActive = true
	c.txLog = nil
	logger.Debug("transaction started")
	return nil
}

// FinishTransaction commits: the log is dropped without deleting anything.
func (c *Client) FinishTransaction() {
	logger.Debug("transaction finished", "logged_creations", len(c.txLog))
	c.txActive = false
	c.txLog = nil
}

// Rollback deletes every logged creation in reverse creation order.
// Individual delete failures are logged and swallowed; rollback is best
// effort.
func (c *Client) Rollback(ctx context.Context) {
	logger.Info("rolling back", "logged_creations", len(c.txLog))
	for _, entry := range c.txLog {
		if err := c.DeleteByID(ctx, entry.endpoint, entry.recordID); err != nil {
			logger.Warn("rollback delete failed",
				"endpoint", entry.endpoint.String(),
				"record_id", entry.recordID,
				"error", err.Error())
		}
	}
	c.txActive = false
	c.txLog = nil
}

// InTransaction reports whether a transaction is active.
func (c *Client) InTransaction() bool {
	return c.txActive
}
