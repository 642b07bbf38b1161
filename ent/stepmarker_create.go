// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/schema/field"
	"github.com/bjornpagen/qtiforge/ent/stepmarker"
)

// StepMarkerCreate is the builder for creating a StepMarker entity.
type StepMarkerCreate struct {
	config
	mutation *StepMarkerMutation
	hooks    []Hook
}

// SetRunID sets the "run_id" field.
func (_c *StepMarkerCreate) SetRunID(v string) *StepMarkerCreate {
	_c.mutation.SetRunID(v)
	return _c
}

// SetStep sets the "step" field.
func (_c *StepMarkerCreate) SetStep(v string) *StepMarkerCreate {
	_c.mutation.SetStep(v)
	return _c
}

// SetCompletedAt sets the "completed_at" field.
func (_c *StepMarkerCreate) SetCompletedAt(v time.Time) *StepMarkerCreate {
	_c.mutation.SetCompletedAt(v)
	return _c
}

// SetNillableCompletedAt sets the "completed_at" field if the given value is not nil.
func (_c *StepMarkerCreate) SetNillableCompletedAt(v *time.Time) *StepMarkerCreate {
	if v != nil {
		_c.SetCompletedAt(*v)
	}
	return _c
}

// Mutation returns the StepMarkerMutation object of the builder.
func (_c *StepMarkerCreate) Mutation() *StepMarkerMutation {
	return _c.mutation
}

// Save creates the StepMarker in the database.
func (_c *StepMarkerCreate) Save(ctx context.Context) (*StepMarker, error) {
	_c.defaults()
	return withHooks(ctx, _c.sqlSave, _c.mutation, _c.hooks)
}

// SaveX calls Save and panics if Save returns an error.
func (_c *StepMarkerCreate) SaveX(ctx context.Context) *StepMarker {
	v, err := _c.Save(ctx)
	if err != nil {
		panic(err)
	}
	return v
}

// Exec executes the query.
func (_c *StepMarkerCreate) Exec(ctx context.Context) error {
	_, err := _c.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_c *StepMarkerCreate) ExecX(ctx context.Context) {
	if err := _c.Exec(ctx); err != nil {
		panic(err)
	}
}

// defaults sets the default values of the builder before save.
func (_c *StepMarkerCreate) defaults() {
	if _, ok := _c.mutation.CompletedAt(); !ok {
		v := stepmarker.DefaultCompletedAt()
		_c.mutation.SetCompletedAt(v)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_c *StepMarkerCreate) check() error {
	if _, ok := _c.mutation.RunID(); !ok {
		return &ValidationError{Name: "run_id", err: errors.New(`ent: missing required field "StepMarker.run_id"`)}
	}
	if _, ok := _c.mutation.Step(); !ok {
		return &ValidationError{Name: "step", err: errors.New(`ent: missing required field "StepMarker.step"`)}
	}
	if _, ok := _c.mutation.CompletedAt(); !ok {
		return &ValidationError{Name: "completed_at", err: errors.New(`ent: missing required field "StepMarker.completed_at"`)}
	}
	return nil
}

func (_c *StepMarkerCreate) sqlSave(ctx context.Context) (*StepMarker, error) {
	if err := _c.check(); err != nil {
		return nil, err
	}
	_node, _spec := _c.createSpec()
	if err := sqlgraph.CreateNode(ctx, _c.driver, _spec); err != nil {
		if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	id := _spec.ID.Value.(int64)
	_node.ID = int(id)
	_c.mutation.id = &_node.ID
	_c.mutation.done = true
	return _node, nil
}

func (_c *StepMarkerCreate) createSpec() (*StepMarker, *sqlgraph.CreateSpec) {
	var (
		_node = &StepMarker{config: _c.config}
		_spec = sqlgraph.NewCreateSpec(stepmarker.Table, sqlgraph.NewFieldSpec(stepmarker.FieldID, field.TypeInt))
	)
	if value, ok := _c.mutation.RunID(); ok {
		_spec.SetField(stepmarker.FieldRunID, field.TypeString, value)
		_node.RunID = value
	}
	if value, ok := _c.mutation.Step(); ok {
		_spec.SetField(stepmarker.FieldStep, field.TypeString, value)
		_node.Step = value
	}
	if value, ok := _c.mutation.CompletedAt(); ok {
		_spec.SetField(stepmarker.FieldCompletedAt, field.TypeTime, value)
		_node.CompletedAt = value
	}
	return _node, _spec
}

// StepMarkerCreateBulk is the builder for creating many StepMarker entities in bulk.
type StepMarkerCreateBulk struct {
	config
	err      error
	builders []*StepMarkerCreate
}

// Save creates the StepMarker entities in the database.
func (_c *StepMarkerCreateBulk) Save(ctx context.Context) ([]*StepMarker, error) {
	if _c.err != nil {
		return nil, _c.err
	}
	specs := make([]*sqlgraph.CreateSpec, len(_c.builders))
	nodes := make([]*StepMarker, len(_c.builders))
	mutators := make([]Mutator, len(_c.builders))
	for i := range _c.builders {
		func(i int, root context.Context) {
			builder := _c.builders[i]
			builder.defaults()
			var mut Mutator = MutateFunc(func(ctx context.Context, m Mutation) (Value, error) {
				mutation, ok := m.(*StepMarkerMutation)
				if !ok {
					return nil, fmt.Errorf("unexpected mutation type %T", m)
				}
				if err := builder.check(); err != nil {
					return nil, err
				}
				builder.mutation = mutation
				var err error
				nodes[i], specs[i] = builder.createSpec()
				if i < len(mutators)-1 {
					_, err = mutators[i+1].Mutate(root, _c.builders[i+1].mutation)
				} else {
					spec := &sqlgraph.BatchCreateSpec{Nodes: specs}
					// Invoke the actual operation on the latest mutation in the chain.
					if err = sqlgraph.BatchCreate(ctx, _c.driver, spec); err != nil {
						if sqlgraph.IsConstraintError(err) {
							err = &ConstraintError{msg: err.Error(), wrap: err}
						}
					}
				}
				if err != nil {
					return nil, err
				}
				mutation.id = &nodes[i].ID
				if specs[i].ID.Value != nil {
					id := specs[i].ID.Value.(int64)
					nodes[i].ID = int(id)
				}
				mutation.done = true
				return nodes[i], nil
			})
			for i := len(builder.hooks) - 1; i >= 0; i-- {
				mut = builder.hooks[i](mut)
			}
			mutators[i] = mut
		}(i, ctx)
	}
	if len(mutators) > 0 {
		if _, err := mutators[0].Mutate(ctx, _c.builders[0].mutation); err != nil {
			return nil, err
		}
	}
	return nodes, nil
}

// SaveX is like Save, but panics if an error occurs.
func (_c *StepMarkerCreateBulk) SaveX(ctx context.Context) []*StepMarker {
	v, err := _c.Save(ctx)
	if err != nil {
		panic(err)
	}
	return v
}

// Exec executes the query.
func (_c *StepMarkerCreateBulk) Exec(ctx context.Context) error {
	_, err := _c.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_c *StepMarkerCreateBulk) ExecX(ctx context.Context) {
	if err := _c.Exec(ctx); err != nil {
		panic(err)
	}
}
