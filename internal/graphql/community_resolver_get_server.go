package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/stormhead-org/community/internal/lib"
)

func (r *Resolver) getServer(p graphql.ResolveParams) (interface{}, error) {
	email, err := r.callerEmail(p.Context)
	if err != nil {
		return nil, err
	}

	serverID, ok := idArg(p.Args, "id")
	if !ok {
		return nil, lib.ServerNotFoundError()
	}

	return r.community.GetServer(p.Context, serverID, email)
}

func (r *Resolver) getServerByInviteCode(p graphql.ResolveParams) (interface{}, error) {
	inviteCode, _ := p.Args["inviteCode"].(string)
	return r.community.GetServerByInviteCode(p.Context, inviteCode)
}

func (r *Resolver) getServers(p graphql.ResolveParams) (interface{}, error) {
	email, err := r.callerEmail(p.Context)
	if err != nil {
		return nil, err
	}

	return r.community.ListServersForMember(p.Context, email)
}
