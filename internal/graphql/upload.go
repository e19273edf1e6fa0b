package graphql

import (
	"mime/multipart"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
)

// File is a multipart file part bound to an Upload variable.
type File struct {
	Filename    string
	ContentType string
	Size        int64
	header      *multipart.FileHeader
}

func NewFile(header *multipart.FileHeader) *File {
	return &File{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		header:      header,
	}
}

func (f *File) Open() (multipart.File, error) {
	return f.header.Open()
}

// Upload only accepts values injected from multipart parts; it has no literal
// or output form.
var Upload = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "Upload",
	Description: "A file part of a multipart GraphQL request.",
	Serialize: func(value interface{}) interface{} {
		return nil
	},
	ParseValue: func(value interface{}) interface{} {
		if file, ok := value.(*File); ok {
			return file
		}
		return nil
	},
	ParseLiteral: func(valueAST ast.Value) interface{} {
		return nil
	},
})
