package graphql

import (
	"github.com/graphql-go/graphql"
)

func (r *Resolver) joinServer(p graphql.ResolveParams) (interface{}, error) {
	email, err := r.callerEmail(p.Context)
	if err != nil {
		return nil, err
	}

	inviteCode, _ := p.Args["inviteCode"].(string)
	return r.community.JoinServer(p.Context, inviteCode, email)
}
