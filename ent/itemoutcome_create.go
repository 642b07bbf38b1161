// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/schema/field"
	"github.com/bjornpagen/qtiforge/ent/itemoutcome"
)

// ItemOutcomeCreate is the builder for creating a ItemOutcome entity.
type ItemOutcomeCreate struct {
	config
	mutation *ItemOutcomeMutation
	hooks    []Hook
}

// SetRunID sets the "run_id" field.
func (_c *ItemOutcomeCreate) SetRunID(v string) *ItemOutcomeCreate {
	_c.mutation.SetRunID(v)
	return _c
}

// SetStep sets the "step" field.
func (_c *ItemOutcomeCreate) SetStep(v string) *ItemOutcomeCreate {
	_c.mutation.SetStep(v)
	return _c
}

// SetItemID sets the "item_id" field.
func (_c *ItemOutcomeCreate) SetItemID(v string) *ItemOutcomeCreate {
	_c.mutation.SetItemID(v)
	return _c
}

// SetStatus sets the "status" field.
func (_c *ItemOutcomeCreate) SetStatus(v string) *ItemOutcomeCreate {
	_c.mutation.SetStatus(v)
	return _c
}

// SetDetail sets the "detail" field.
func (_c *ItemOutcomeCreate) SetDetail(v string) *ItemOutcomeCreate {
	_c.mutation.SetDetail(v)
	return _c
}

// SetNillableDetail sets the "detail" field if the given value is not nil.
func (_c *ItemOutcomeCreate) SetNillableDetail(v *string) *ItemOutcomeCreate {
	if v != nil {
		_c.SetDetail(*v)
	}
	return _c
}

// SetPayload sets the "payload" field.
func (_c *ItemOutcomeCreate) SetPayload(v string) *ItemOutcomeCreate {
	_c.mutation.SetPayload(v)
	return _c
}

// SetNillablePayload sets the "payload" field if the given value is not nil.
func (_c *ItemOutcomeCreate) SetNillablePayload(v *string) *ItemOutcomeCreate {
	if v != nil {
		_c.SetPayload(*v)
	}
	return _c
}

// SetRecordedAt sets the "recorded_at" field.
func (_c *ItemOutcomeCreate) SetRecordedAt(v time.Time) *ItemOutcomeCreate {
	_c.mutation.SetRecordedAt(v)
	return _c
}

// SetNillableRecordedAt sets the "recorded_at" field if the given value is not nil.
func (_c *ItemOutcomeCreate) SetNillableRecordedAt(v *time.Time) *ItemOutcomeCreate {
	if v != nil {
		_c.SetRecordedAt(*v)
	}
	return _c
}

// Mutation returns the ItemOutcomeMutation object of the builder.
func (_c *ItemOutcomeCreate) Mutation() *ItemOutcomeMutation {
	return _c.mutation
}

// Save creates the ItemOutcome in the database.
func (_c *ItemOutcomeCreate) Save(ctx context.Context) (*ItemOutcome, error) {
	_c.defaults()
	return withHooks(ctx, _c.sqlSave, _c.mutation, _c.hooks)
}

// SaveX calls Save and panics if Save returns an error.
func (_c *ItemOutcomeCreate) SaveX(ctx context.Context) *ItemOutcome {
	v, err := _c.Save(ctx)
	if err != nil {
		panic(err)
	}
	return v
}

// Exec executes the query.
func (_c *ItemOutcomeCreate) Exec(ctx context.Context) error {
	_, err := _c.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_c *ItemOutcomeCreate) ExecX(ctx context.Context) {
	if err := _c.Exec(ctx); err != nil {
		panic(err)
	}
}

// defaults sets the default values of the builder before save.
func (_c *ItemOutcomeCreate) defaults() {
	if _, ok := _c.mutation.Detail(); !ok {
		v := itemoutcome.DefaultDetail
		_c.mutation.SetDetail(v)
	}
	if _, ok := _c.mutation.Payload(); !ok {
		v := itemoutcome.DefaultPayload
		_c.mutation.SetPayload(v)
	}
	if _, ok := _c.mutation.RecordedAt(); !ok {
		v := itemoutcome.DefaultRecordedAt()
		_c.mutation.SetRecordedAt(v)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_c *ItemOutcomeCreate) check() error {
	if _, ok := _c.mutation.RunID(); !ok {
		return &ValidationError{Name: "run_id", err: errors.New(`ent: missing required field "ItemOutcome.run_id"`)}
	}
	if _, ok := _c.mutation.Step(); !ok {
		return &ValidationError{Name: "step", err: errors.New(`ent: missing required field "ItemOutcome.step"`)}
	}
	if _, ok := _c.mutation.ItemID(); !ok {
		return &ValidationError{Name: "item_id", err: errors.New(`ent: missing required field "ItemOutcome.item_id"`)}
	}
	if _, ok := _c.mutation.Status(); !ok {
		return &ValidationError{Name: "status", err: errors.New(`ent: missing required field "ItemOutcome.status"`)}
	}
	if _, ok := _c.mutation.Detail(); !ok {
		return &ValidationError{Name: "detail", err: errors.New(`ent: missing required field "ItemOutcome.detail"`)}
	}
	if _, ok := _c.mutation.Payload(); !ok {
		return &ValidationError{Name: "payload", err: errors.New(`ent: missing required field "ItemOutcome.payload"`)}
	}
	if _, ok := _c.mutation.RecordedAt(); !ok {
		return &ValidationError{Name: "recorded_at", err: errors.New(`ent: missing required field "ItemOutcome.recorded_at"`)}
	}
	return nil
}

func (_c *ItemOutcomeCreate) sqlSave(ctx context.Context) (*ItemOutcome, error) {
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

func (_c *ItemOutcomeCreate) createSpec() (*ItemOutcome, *sqlgraph.CreateSpec) {
	var (
		_node = &ItemOutcome{config: _c.config}
		_spec = sqlgraph.NewCreateSpec(itemoutcome.Table, sqlgraph.NewFieldSpec(itemoutcome.FieldID, field.TypeInt))
	)
	if value, ok := _c.mutation.RunID(); ok {
		_spec.SetField(itemoutcome.FieldRunID, field.TypeString, value)
		_node.RunID = value
	}
	if value, ok := _c.mutation.Step(); ok {
		_spec.SetField(itemoutcome.FieldStep, field.TypeString, value)
		_node.Step = value
	}
	if value, ok := _c.mutation.ItemID(); ok {
		_spec.SetField(itemoutcome.FieldItemID, field.TypeString, value)
		_node.ItemID = value
	}
	if value, ok := _c.mutation.Status(); ok {
		_spec.SetField(itemoutcome.FieldStatus, field.TypeString, value)
		_node.Status = value
	}
	if value, ok := _c.mutation.Detail(); ok {
		_spec.SetField(itemoutcome.FieldDetail, field.TypeString, value)
		_node.Detail = value
	}
	if value, ok := _c.mutation.Payload(); ok {
		_spec.SetField(itemoutcome.FieldPayload, field.TypeString, value)
		_node.Payload = value
	}
	if value, ok := _c.mutation.RecordedAt(); ok {
		_spec.SetField(itemoutcome.FieldRecordedAt, field.TypeTime, value)
		_node.RecordedAt = value
	}
	return _node, _spec
}

// ItemOutcomeCreateBulk is the builder for creating many ItemOutcome entities in bulk.
type ItemOutcomeCreateBulk struct {
	config
	err      error
	builders []*ItemOutcomeCreate
}

// Save creates the ItemOutcome entities in the database.
func (_c *ItemOutcomeCreateBulk) Save(ctx context.Context) ([]*ItemOutcome, error) {
	if _c.err != nil {
		return nil, _c.err
	}
	specs := make([]*sqlgraph.CreateSpec, len(_c.builders))
	nodes := make([]*ItemOutcome, len(_c.builders))
	mutators := make([]Mutator, len(_c.builders))
	for i := range _c.builders {
		func(i int, root context.Context) {
			builder := _c.builders[i]
			builder.defaults()
			var mut Mutator = MutateFunc(func(ctx context.Context, m Mutation) (Value, error) {
				mutation, ok := m.(*ItemOutcomeMutation)
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
func (_c *ItemOutcomeCreateBulk) SaveX(ctx context.Context) []*ItemOutcome {
	v, err := _c.Save(ctx)
	if err != nil {
		panic(err)
	}
	return v
}

// Exec executes the query.
func (_c *ItemOutcomeCreateBulk) Exec(ctx context.Context) error {
	_, err := _c.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_c *ItemOutcomeCreateBulk) ExecX(ctx context.Context) {
	if err := _c.Exec(ctx); err != nil {
		panic(err)
	}
}
