package middleware

import "context"

type contextKey string

const (
	ctxVanID     contextKey = "van_id"
	ctxVanNumber contextKey = "van_number"
	ctxRegionID  contextKey = "region_id"
	ctxRole      contextKey = "actor_role"
	ctxPhone     contextKey = "phone"
)

func VanIDFromContext(ctx context.Context) int64 {
	if ctx == nil {
		return 0
	}
	if v, ok := ctx.Value(ctxVanID).(int64); ok {
		return v
	}
	return 0
}

func VanNumberFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxVanNumber).(string); ok {
		return v
	}
	return ""
}

func RegionIDFromContext(ctx context.Context) int64 {
	if ctx == nil {
		return 0
	}
	if v, ok := ctx.Value(ctxRegionID).(int64); ok {
		return v
	}
	return 0
}

func RoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(string); ok {
		return v
	}
	return ""
}

func PhoneFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxPhone).(string); ok {
		return v
	}
	return ""
}

// WithVanID injects the van identifier into the context.
func WithVanID(ctx context.Context, vanID int64) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxVanID, vanID)
}

// WithRole injects the actor role into the context for downstream handlers.
func WithRole(ctx context.Context, role string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxRole, role)
}
