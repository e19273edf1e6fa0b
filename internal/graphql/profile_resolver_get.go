package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/stormhead-org/community/internal/lib"
)

func (r *Resolver) getProfile(p graphql.ResolveParams) (interface{}, error) {
	email, err := r.callerEmail(p.Context)
	if err != nil {
		return nil, err
	}

	return r.profiles.GetProfileByEmail(p.Context, email)
}

func (r *Resolver) getProfileByID(p graphql.ResolveParams) (interface{}, error) {
	profileID, ok := idArg(p.Args, "id")
	if !ok {
		return nil, lib.ProfileNotFoundError()
	}

	return r.profiles.GetProfileByID(p.Context, profileID)
}
