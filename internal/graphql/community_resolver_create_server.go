package graphql

import (
	"strings"

	"github.com/graphql-go/graphql"

	"github.com/stormhead-org/community/internal/lib"
)

func (r *Resolver) createServer(p graphql.ResolveParams) (interface{}, error) {
	input := inputArg(p)

	file, _ := p.Args["file"].(*File)
	if file == nil {
		return nil, lib.ValidationError("IMAGE_REQUIRED", "Image is required")
	}

	name, _ := input["name"].(string)
	if strings.TrimSpace(name) == "" {
		return nil, lib.ValidationError("SERVER_NAME_REQUIRED", "Server name is required")
	}

	profileID, err := r.callerID(p.Context)
	if err != nil {
		return nil, err
	}
	if requested, ok := idArg(input, "profileId"); ok && requested != profileID {
		return nil, lib.ForbiddenError("Servers can only be created for the signed in profile")
	}

	imageURL, err := r.uploadImage(p.Context, file)
	if err != nil {
		return nil, err
	}

	return r.community.CreateServer(p.Context, profileID, name, imageURL)
}
