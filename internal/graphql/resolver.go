package graphql

import (
	"context"
	"errors"
	"io"

	"github.com/graphql-go/graphql"
	"go.uber.org/zap"

	"github.com/stormhead-org/community/internal/lib"
	"github.com/stormhead-org/community/internal/metrics"
	"github.com/stormhead-org/community/internal/middleware"
	"github.com/stormhead-org/community/internal/orm"
	"github.com/stormhead-org/community/internal/services"
)

// ImageStore persists uploaded images and returns a URL they are served from.
type ImageStore interface {
	UploadImage(ctx context.Context, filename, contentType string, data io.Reader) (string, error)
}

type Resolver struct {
	log       *zap.Logger
	community services.CommunityService
	profiles  services.ProfileService
	policy    services.MemberPolicy
	images    ImageStore
	metrics   *metrics.Metrics
}

func NewResolver(
	log *zap.Logger,
	community services.CommunityService,
	profiles services.ProfileService,
	policy services.MemberPolicy,
	images ImageStore,
	metrics *metrics.Metrics,
) *Resolver {
	return &Resolver{
		log:       log,
		community: community,
		profiles:  profiles,
		policy:    policy,
		images:    images,
		metrics:   metrics,
	}
}

// observe counts every call of resolve under operation and hands graphql-go
// an error it can render with extensions.
func (r *Resolver) observe(operation string, resolve graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		result, err := resolve(p)
		err = lib.HandleError(err)
		if r.metrics != nil {
			r.metrics.ObserveOperation(operation, err)
		}
		if err != nil {
			return nil, err
		}
		return result, nil
	}
}

func (r *Resolver) callerEmail(ctx context.Context) (string, error) {
	email, err := middleware.GetProfileEmail(ctx)
	if err != nil {
		return "", lib.ProfileNotFoundError()
	}
	return email, nil
}

func (r *Resolver) callerID(ctx context.Context) (uint, error) {
	id, err := middleware.GetProfileID(ctx)
	if err != nil {
		return 0, lib.ProfileNotFoundError()
	}
	return id, nil
}

// requireRole lets the caller through when their role on the server is one of
// required. Non-members get ServerNotFound so the server's existence stays hidden.
func (r *Resolver) requireRole(ctx context.Context, serverID uint, required ...orm.MemberRole) error {
	profileID, err := r.callerID(ctx)
	if err != nil {
		return err
	}

	role, err := r.policy.RoleOf(ctx, profileID, serverID)
	if errors.Is(err, lib.ErrNotMember) {
		return lib.ServerNotFoundError()
	}
	if err != nil {
		return lib.InternalError()
	}
	if !r.policy.Authorize(role, required...) {
		return lib.ForbiddenError("Only admins can manage this server")
	}
	return nil
}

func (r *Resolver) uploadImage(ctx context.Context, file *File) (string, error) {
	data, err := file.Open()
	if err != nil {
		r.log.Error("could not open uploaded file", zap.Error(err))
		return "", lib.InternalError()
	}
	defer data.Close()

	url, err := r.images.UploadImage(ctx, file.Filename, file.ContentType, data)
	if err != nil {
		r.log.Error("could not store uploaded image", zap.String("filename", file.Filename), zap.Error(err))
		return "", lib.InternalError()
	}
	return url, nil
}

// idArg reads a graphql Int as a row id. Absent, null and non-positive values
// report ok=false.
func idArg(args map[string]interface{}, name string) (uint, bool) {
	value, ok := args[name].(int)
	if !ok || value <= 0 {
		return 0, false
	}
	return uint(value), true
}

func inputArg(p graphql.ResolveParams) map[string]interface{} {
	input, _ := p.Args["input"].(map[string]interface{})
	if input == nil {
		return map[string]interface{}{}
	}
	return input
}
