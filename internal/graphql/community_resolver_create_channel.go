package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/stormhead-org/community/internal/lib"
	"github.com/stormhead-org/community/internal/orm"
)

func (r *Resolver) createChannel(p graphql.ResolveParams) (interface{}, error) {
	email, err := r.callerEmail(p.Context)
	if err != nil {
		return nil, err
	}

	input := inputArg(p)
	serverID, ok := idArg(input, "serverId")
	if !ok {
		return nil, lib.ValidationError("SERVER_ID_REQUIRED", "Server id is required")
	}

	name, _ := input["name"].(string)

	var channelType string
	switch value := input["type"].(type) {
	case orm.ChannelType:
		channelType = string(value)
	case string:
		channelType = value
	}

	return r.community.CreateChannel(p.Context, serverID, email, name, channelType)
}
