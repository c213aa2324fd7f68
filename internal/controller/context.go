package controller

import "context"

type contextKey int

const (
	connIDCtxKey contextKey = iota
	userIDCtxKey
	clientCtxKey
)

func (c *controller) getConnIDFromCtx(ctx context.Context) string {
	connID, ok := ctx.Value(connIDCtxKey).(string)
	if !ok {
		return ""
	}

	return connID
}

func (c *controller) getUserIDFromCtx(ctx context.Context) string {
	userID, ok := ctx.Value(userIDCtxKey).(string)
	if !ok {
		return ""
	}

	return userID
}

func (c *controller) getClientFromCtx(ctx context.Context) *client {
	cl, ok := ctx.Value(clientCtxKey).(*client)
	if !ok {
		return nil
	}

	return cl
}
