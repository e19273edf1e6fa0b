package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/stormhead-org/community/internal/orm"
)

var channelTypeEnum = graphql.NewEnum(graphql.EnumConfig{
	Name:        "ChannelType",
	Description: "Defines the type of channel",
	Values: graphql.EnumValueConfigMap{
		"TEXT":  &graphql.EnumValueConfig{Value: orm.ChannelTypeText},
		"AUDIO": &graphql.EnumValueConfig{Value: orm.ChannelTypeAudio},
		"VIDEO": &graphql.EnumValueConfig{Value: orm.ChannelTypeVideo},
	},
})

var memberRoleEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "MemberRole",
	Values: graphql.EnumValueConfigMap{
		"ADMIN":     &graphql.EnumValueConfig{Value: orm.MemberRoleAdmin},
		"MODERATOR": &graphql.EnumValueConfig{Value: orm.MemberRoleModerator},
		"GUEST":     &graphql.EnumValueConfig{Value: orm.MemberRoleGuest},
	},
})

var channelType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Channel",
	Fields: graphql.Fields{
		"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"name":      &graphql.Field{Type: graphql.String},
		"type":      &graphql.Field{Type: graphql.NewNonNull(channelTypeEnum)},
		"serverId":  &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"profileId": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		"updatedAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
	},
})

var memberType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Member",
	Fields: graphql.Fields{
		"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"role":      &graphql.Field{Type: graphql.NewNonNull(memberRoleEnum)},
		"profileId": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"serverId":  &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		"updatedAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
	},
})

var serverType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Server",
	Fields: graphql.Fields{
		"id":         &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"name":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"imageUrl":   &graphql.Field{Type: graphql.String},
		"inviteCode": &graphql.Field{Type: graphql.String},
		"profileId":  &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"channels":   &graphql.Field{Type: graphql.NewList(channelType)},
		"members":    &graphql.Field{Type: graphql.NewList(memberType)},
		"createdAt":  &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		"updatedAt":  &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
	},
})

var profileType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Profile",
	Fields: graphql.Fields{
		"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"email":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"name":      &graphql.Field{Type: graphql.String},
		"imageUrl":  &graphql.Field{Type: graphql.String},
		"servers":   &graphql.Field{Type: graphql.NewList(serverType)},
		"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		"updatedAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
	},
})

var createServerInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CreateServerInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"profileId": &graphql.InputObjectFieldConfig{
			Type:        graphql.Int,
			Description: "Creator profile; defaults to the caller",
		},
	},
})

var updateServerInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "UpdateServerInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"serverId": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
		"name":     &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var createChannelOnServerInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CreateChannelOnServerInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"serverId": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
		"name":     &graphql.InputObjectFieldConfig{Type: graphql.String},
		"type":     &graphql.InputObjectFieldConfig{Type: channelTypeEnum},
	},
})
