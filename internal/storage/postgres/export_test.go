package postgres

import "context"

// SessionApplicationName reads application_name from a pooled session.
func (p *Pool) SessionApplicationName(ctx context.Context) (string, error) {
	var name string
	err := p.pool.QueryRow(ctx, `SELECT current_setting('application_name')`).Scan(&name)
	return name, err
}
