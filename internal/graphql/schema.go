package graphql

import (
	"github.com/graphql-go/graphql"
)

func NewSchema(r *Resolver) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"getServers": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(serverType))),
				Description: "Servers the caller is a member of",
				Resolve:     r.observe("getServers", r.getServers),
			},
			"getServer": &graphql.Field{
				Type: serverType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: r.observe("getServer", r.getServer),
			},
			"getServerByInviteCode": &graphql.Field{
				Type: serverType,
				Args: graphql.FieldConfigArgument{
					"inviteCode": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.observe("getServerByInviteCode", r.getServerByInviteCode),
			},
			"getProfile": &graphql.Field{
				Type:    profileType,
				Resolve: r.observe("getProfile", r.getProfile),
			},
			"getProfileById": &graphql.Field{
				Type: profileType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: r.observe("getProfileById", r.getProfileByID),
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createServer": &graphql.Field{
				Type: serverType,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createServerInput)},
					"file":  &graphql.ArgumentConfig{Type: Upload},
				},
				Resolve: r.observe("createServer", r.createServer),
			},
			"updateServer": &graphql.Field{
				Type: serverType,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateServerInput)},
					"file":  &graphql.ArgumentConfig{Type: Upload},
				},
				Resolve: r.observe("updateServer", r.updateServer),
			},
			"updateServerWithNewInviteCode": &graphql.Field{
				Type: serverType,
				Args: graphql.FieldConfigArgument{
					"serverId": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: r.observe("updateServerWithNewInviteCode", r.updateServerWithNewInviteCode),
			},
			"createChannel": &graphql.Field{
				Type: serverType,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createChannelOnServerInput)},
				},
				Resolve: r.observe("createChannel", r.createChannel),
			},
			"joinServer": &graphql.Field{
				Type: serverType,
				Args: graphql.FieldConfigArgument{
					"inviteCode": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.observe("joinServer", r.joinServer),
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
		Types:    []graphql.Type{Upload},
	})
}
