package catalogpager

import (
	"fmt"
	"slices"
	"sort"

	"github.com/samber/lo"
)

// ParentScope describes how an entity relates to a parent, e.g. "subject
// areas of book X".
//
// With a JoinTable the relation is many-to-many:
//
//	JOIN <JoinTable> ON <JoinTable>.<JoinKeyToEntity> = <Table>.<IDColumn>
//	WHERE <JoinTable>.<JoinKeyToParent> = ?
//
// Without one, JoinKeyToParent is a foreign key column of the entity table
// itself and JoinKeyToEntity is ignored.
type ParentScope struct {
	JoinTable       string
	JoinKeyToEntity string
	JoinKeyToParent string
}

// EntityDescriptor is the declarative description of how one resource type
// is listed. Column names are bare; they are qualified with Table when
// rendered.
type EntityDescriptor struct {
	Name     string
	Table    string
	IDColumn string
	// Columns is the ordered projection. It must contain IDColumn.
	Columns     []string
	ParentScope *ParentScope
}

// Qualify returns "<Table>.<column>".
func (d EntityDescriptor) Qualify(column string) string {
	return d.Table + "." + column
}

// QualifiedID returns the fully qualified identity column.
func (d EntityDescriptor) QualifiedID() string {
	return d.Qualify(d.IDColumn)
}

// QualifiedColumns returns the projection qualified with the entity table.
func (d EntityDescriptor) QualifiedColumns() []string {
	return lo.Map(d.Columns, func(c string, _ int) string { return d.Qualify(c) })
}

// HasParentScope reports whether the entity can be listed per parent.
func (d EntityDescriptor) HasParentScope() bool {
	return d.ParentScope != nil
}

// ScopePredicate returns the predicate constraining a listing to the rows
// related to parent.
func (d EntityDescriptor) ScopePredicate(parent Key) (Predicate, error) {
	if d.ParentScope == nil {
		return Predicate{}, fmt.Errorf("%w: '%s'", ErrNoParentScope, d.Name)
	}

	column := d.Qualify(d.ParentScope.JoinKeyToParent)
	if d.ParentScope.JoinTable != "" {
		column = d.ParentScope.JoinTable + "." + d.ParentScope.JoinKeyToParent
	}

	return Predicate{Column: column, Operator: OperatorEq, Value: parent}, nil
}

// joinClause returns the JOIN needed by a scoped listing, or "" when the
// parent key lives on the entity table.
func (d EntityDescriptor) joinClause() string {
	if d.ParentScope == nil || d.ParentScope.JoinTable == "" {
		return ""
	}

	s := d.ParentScope
	return fmt.Sprintf("JOIN %s ON %s.%s = %s", s.JoinTable, s.JoinTable, s.JoinKeyToEntity, d.QualifiedID())
}

// Validate checks the descriptor for missing or unsafe names.
func (d EntityDescriptor) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("entity descriptor has no name")
	}

	names := []string{d.Table, d.IDColumn}
	names = append(names, d.Columns...)
	if s := d.ParentScope; s != nil {
		names = append(names, s.JoinKeyToParent)
		if s.JoinTable != "" {
			names = append(names, s.JoinTable, s.JoinKeyToEntity)
		}
	}
	for _, name := range names {
		if err := validateColumnName(name); err != nil {
			return fmt.Errorf("entity '%s': %w", d.Name, err)
		}
	}

	if len(d.Columns) == 0 {
		return fmt.Errorf("entity '%s': empty projection", d.Name)
	}
	if !slices.Contains(d.Columns, d.IDColumn) {
		return fmt.Errorf("entity '%s': projection does not contain id column '%s'", d.Name, d.IDColumn)
	}
	if dup := lo.FindDuplicates(d.Columns); len(dup) > 0 {
		return fmt.Errorf("entity '%s': duplicate projected columns %v", d.Name, dup)
	}

	return nil
}

func (d EntityDescriptor) clone() EntityDescriptor {
	d.Columns = slices.Clone(d.Columns)
	if d.ParentScope != nil {
		scope := *d.ParentScope
		d.ParentScope = &scope
	}

	return d
}

// Catalog is the static, read-only table of entity descriptors. It is built
// once at process start and is safe for concurrent use.
type Catalog struct {
	entries map[string]EntityDescriptor
	names   []string
}

// NewCatalog validates and registers the descriptors.
func NewCatalog(descriptors ...EntityDescriptor) (*Catalog, error) {
	c := &Catalog{entries: make(map[string]EntityDescriptor, len(descriptors))}

	for _, d := range descriptors {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
		}
		if _, ok := c.entries[d.Name]; ok {
			return nil, fmt.Errorf("%w: entity '%s' registered twice", ErrConfiguration, d.Name)
		}

		c.entries[d.Name] = d.clone()
		c.names = append(c.names, d.Name)
	}
	sort.Strings(c.names)

	return c, nil
}

// MustNewCatalog is NewCatalog that panics on error. Use it for package
// level catalogs.
func MustNewCatalog(descriptors ...EntityDescriptor) *Catalog {
	c, err := NewCatalog(descriptors...)
	if err != nil {
		panic(err)
	}

	return c
}

// Describe returns the descriptor registered under name.
func (c *Catalog) Describe(name string) (EntityDescriptor, error) {
	if c == nil {
		return EntityDescriptor{}, fmt.Errorf("%w: catalog is nil", ErrConfiguration)
	}

	d, ok := c.entries[name]
	if !ok {
		return EntityDescriptor{}, fmt.Errorf("%w '%s'. closest: '%s'", ErrUnknownEntity, name, closestName(name, c.names))
	}

	return d.clone(), nil
}

// Names returns the registered entity names in sorted order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}

	return slices.Clone(c.names)
}
