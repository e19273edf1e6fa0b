package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/stormhead-org/community/internal/lib"
	"github.com/stormhead-org/community/internal/services/member"
)

func (r *Resolver) updateServer(p graphql.ResolveParams) (interface{}, error) {
	input := inputArg(p)

	serverID, ok := idArg(input, "serverId")
	if !ok {
		return nil, lib.ValidationError("SERVER_ID_REQUIRED", "Server id is required")
	}
	if err := r.requireRole(p.Context, serverID, member.ServerManagers...); err != nil {
		return nil, err
	}

	var name *string
	if value, ok := input["name"].(string); ok {
		name = &value
	}

	var imageURL *string
	if file, _ := p.Args["file"].(*File); file != nil {
		url, err := r.uploadImage(p.Context, file)
		if err != nil {
			return nil, err
		}
		imageURL = &url
	}

	return r.community.UpdateServer(p.Context, serverID, name, imageURL)
}

func (r *Resolver) updateServerWithNewInviteCode(p graphql.ResolveParams) (interface{}, error) {
	serverID, ok := idArg(p.Args, "serverId")
	if !ok {
		return nil, lib.ValidationError("SERVER_ID_REQUIRED", "Server id is required")
	}
	if err := r.requireRole(p.Context, serverID, member.ServerManagers...); err != nil {
		return nil, err
	}

	return r.community.RotateInviteCode(p.Context, serverID)
}
