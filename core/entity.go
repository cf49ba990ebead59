package core

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a DocumentStore when it holds no document yet.
var ErrNotFound = errors.New("no data found")

type (
	Project struct {
		Title       string `json:"title" bson:"title"`
		Description string `json:"description" bson:"description"`
		Link        string `json:"link" bson:"link"`
		Image       string `json:"image" bson:"image"`
	}

	Contact struct {
		Email    string `json:"email" bson:"email"`
		Phone    string `json:"phone" bson:"phone"`
		LinkedIn string `json:"linkedin" bson:"linkedin"`
		GitHub   string `json:"github" bson:"github"`
	}

	BlogPost struct {
		Title   string `json:"title" bson:"title"`
		Date    string `json:"date" bson:"date"`
		Summary string `json:"summary" bson:"summary"`
		Link    string `json:"link" bson:"link"`
	}

	// Document is the whole portfolio. It is always read and written as one value.
	Document struct {
		Name     string     `json:"name" bson:"name"`
		Title    string     `json:"title" bson:"title"`
		About    string     `json:"about" bson:"about"`
		Image    string     `json:"image" bson:"image"`
		Skills   []string   `json:"skills" bson:"skills"`
		Projects []Project  `json:"projects" bson:"projects"`
		Contact  Contact    `json:"contact" bson:"contact"`
		Blog     []BlogPost `json:"blog,omitempty" bson:"blog,omitempty"`
	}

	DocumentStore interface {
		Find(ctx context.Context) (*Document, error)
		Replace(ctx context.Context, document *Document) error
	}
)
