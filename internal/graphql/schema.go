package graphql

import (
	"errors"

	"github.com/google/uuid"
	"github.com/graphql-go/graphql"

	"github.com/mtslabs/mts/internal/compress"
	"github.com/mtslabs/mts/internal/model"
	"github.com/mtslabs/mts/internal/store"
)

var errBadID = errors.New("invalid id argument")

// NewSchema builds the read-only query schema. Mutations go through the REST
// API; the graph exists for traversal-style reads across projects, units and
// commit history.
func NewSchema(s store.Store) (graphql.Schema, error) {
	sourceType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Source",
		Fields: graphql.Fields{
			"sq": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return int(p.Source.(*model.Source).Sq), nil
				},
			},
			"content": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*model.Source).Content, nil
				},
			},
			"meta": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*model.Source).Meta, nil
				},
			},
		},
	})

	recordType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Record",
		Fields: graphql.Fields{
			"sq": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return int(p.Source.(*model.Record).Sq), nil
				},
			},
			"content": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*model.Record).Content, nil
				},
			},
		},
	})

	projectType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Project",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*model.Project).ID.String(), nil
				},
			},
			"name": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*model.Project).Name, nil
				},
			},
		},
	})

	unitType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Unit",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*model.Unit).ID.String(), nil
				},
			},
			"projectId": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*model.Unit).ProjectID.String(), nil
				},
			},
			"title": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*model.Unit).Title, nil
				},
			},
			"latestCommitId": &graphql.Field{
				Type: graphql.ID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					commitID := p.Source.(*model.Unit).CommitID
					if commitID == nil {
						return nil, nil
					}
					return commitID.String(), nil
				},
			},
		},
	})

	commitType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Commit",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*model.Commit).ID.String(), nil
				},
			},
			"unitId": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*model.Commit).UnitID.String(), nil
				},
			},
			"createdAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.DateTime),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*model.Commit).CreatedAt, nil
				},
			},
		},
	})

	projectType.AddFieldConfig("unitList", &graphql.Field{
		Type: graphql.NewList(graphql.NewNonNull(unitType)),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			project := p.Source.(*model.Project)
			listings, err := s.ListUnits(p.Context, project.ID)
			if err != nil {
				return nil, err
			}

			units := make([]*model.Unit, 0, len(listings))
			for _, listing := range listings {
				units = append(units, &model.Unit{
					ID:        listing.ID,
					ProjectID: listing.ProjectID,
					Title:     listing.Title,
					CommitID:  listing.CommitID,
				})
			}
			return units, nil
		},
	})

	unitType.AddFieldConfig("project", &graphql.Field{
		Type: graphql.NewNonNull(projectType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return s.GetProject(p.Context, p.Source.(*model.Unit).ProjectID)
		},
	})

	unitType.AddFieldConfig("sourceList", &graphql.Field{
		Type: graphql.NewList(graphql.NewNonNull(sourceType)),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return s.ListSources(p.Context, p.Source.(*model.Unit).ID)
		},
	})

	unitType.AddFieldConfig("commitList", &graphql.Field{
		Type: graphql.NewList(graphql.NewNonNull(commitType)),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return s.ListCommits(p.Context, p.Source.(*model.Unit).ID)
		},
	})

	commitType.AddFieldConfig("unit", &graphql.Field{
		Type: graphql.NewNonNull(unitType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return s.GetUnit(p.Context, p.Source.(*model.Commit).UnitID)
		},
	})

	commitType.AddFieldConfig("recordList", &graphql.Field{
		Type: graphql.NewList(graphql.NewNonNull(recordType)),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			commit := p.Source.(*model.Commit)

			codec, err := compress.FromName(commit.Compression)
			if err != nil {
				return nil, err
			}

			records, err := s.ListRecords(p.Context, commit.ID)
			if err != nil {
				return nil, err
			}

			for _, record := range records {
				content, err := compress.DecodeString(codec, record.Content)
				if err != nil {
					return nil, err
				}
				record.Content = string(content)
			}
			return records, nil
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"projectList": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(projectType)),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return s.ListProjects(p.Context)
				},
			},
			"project": &graphql.Field{
				Type: projectType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, err := argID(p)
					if err != nil {
						return nil, err
					}
					return s.GetProject(p.Context, id)
				},
			},
			"unit": &graphql.Field{
				Type: unitType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, err := argID(p)
					if err != nil {
						return nil, err
					}
					return s.GetUnit(p.Context, id)
				},
			},
			"commit": &graphql.Field{
				Type: commitType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, err := argID(p)
					if err != nil {
						return nil, err
					}
					return s.GetCommit(p.Context, id)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: queryType})
}

func argID(p graphql.ResolveParams) (uuid.UUID, error) {
	raw, ok := p.Args["id"].(string)
	if !ok {
		return uuid.Nil, errBadID
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errBadID
	}

	return id, nil
}
