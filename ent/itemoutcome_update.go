// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/schema/field"
	"github.com/bjornpagen/qtiforge/ent/itemoutcome"
	"github.com/bjornpagen/qtiforge/ent/predicate"
)

// ItemOutcomeUpdate is the builder for updating ItemOutcome entities.
type ItemOutcomeUpdate struct {
	config
	hooks    []Hook
	mutation *ItemOutcomeMutation
}

// Where appends a list predicates to the ItemOutcomeUpdate builder.
func (_u *ItemOutcomeUpdate) Where(ps ...predicate.ItemOutcome) *ItemOutcomeUpdate {
	_u.mutation.Where(ps...)
	return _u
}

// SetStatus sets the "status" field.
func (_u *ItemOutcomeUpdate) SetStatus(v string) *ItemOutcomeUpdate {
	_u.mutation.SetStatus(v)
	return _u
}

// SetNillableStatus sets the "status" field if the given value is not nil.
func (_u *ItemOutcomeUpdate) SetNillableStatus(v *string) *ItemOutcomeUpdate {
	if v != nil {
		_u.SetStatus(*v)
	}
	return _u
}

// SetDetail sets the "detail" field.
func (_u *ItemOutcomeUpdate) SetDetail(v string) *ItemOutcomeUpdate {
	_u.mutation.SetDetail(v)
	return _u
}

// SetNillableDetail sets the "detail" field if the given value is not nil.
func (_u *ItemOutcomeUpdate) SetNillableDetail(v *string) *ItemOutcomeUpdate {
	if v != nil {
		_u.SetDetail(*v)
	}
	return _u
}

// SetPayload sets the "payload" field.
func (_u *ItemOutcomeUpdate) SetPayload(v string) *ItemOutcomeUpdate {
	_u.mutation.SetPayload(v)
	return _u
}

// SetNillablePayload sets the "payload" field if the given value is not nil.
func (_u *ItemOutcomeUpdate) SetNillablePayload(v *string) *ItemOutcomeUpdate {
	if v != nil {
		_u.SetPayload(*v)
	}
	return _u
}

// SetRecordedAt sets the "recorded_at" field.
func (_u *ItemOutcomeUpdate) SetRecordedAt(v time.Time) *ItemOutcomeUpdate {
	_u.mutation.SetRecordedAt(v)
	return _u
}

// SetNillableRecordedAt sets the "recorded_at" field if the given value is not nil.
func (_u *ItemOutcomeUpdate) SetNillableRecordedAt(v *time.Time) *ItemOutcomeUpdate {
	if v != nil {
		_u.SetRecordedAt(*v)
	}
	return _u
}

// Mutation returns the ItemOutcomeMutation object of the builder.
func (_u *ItemOutcomeUpdate) Mutation() *ItemOutcomeMutation {
	return _u.mutation
}

// Save executes the query and returns the number of nodes affected by the update operation.
func (_u *ItemOutcomeUpdate) Save(ctx context.Context) (int, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *ItemOutcomeUpdate) SaveX(ctx context.Context) int {
	affected, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return affected
}

// Exec executes the query.
func (_u *ItemOutcomeUpdate) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *ItemOutcomeUpdate) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

func (_u *ItemOutcomeUpdate) sqlSave(ctx context.Context) (_node int, err error) {
	_spec := sqlgraph.NewUpdateSpec(itemoutcome.Table, itemoutcome.Columns, sqlgraph.NewFieldSpec(itemoutcome.FieldID, field.TypeInt))
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.Status(); ok {
		_spec.SetField(itemoutcome.FieldStatus, field.TypeString, value)
	}
	if value, ok := _u.mutation.Detail(); ok {
		_spec.SetField(itemoutcome.FieldDetail, field.TypeString, value)
	}
	if value, ok := _u.mutation.Payload(); ok {
		_spec.SetField(itemoutcome.FieldPayload, field.TypeString, value)
	}
	if value, ok := _u.mutation.RecordedAt(); ok {
		_spec.SetField(itemoutcome.FieldRecordedAt, field.TypeTime, value)
	}
	if _node, err = sqlgraph.UpdateNodes(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{itemoutcome.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return 0, err
	}
	_u.mutation.done = true
	return _node, nil
}

// ItemOutcomeUpdateOne is the builder for updating a single ItemOutcome entity.
type ItemOutcomeUpdateOne struct {
	config
	fields   []string
	hooks    []Hook
	mutation *ItemOutcomeMutation
}

// SetStatus sets the "status" field.
func (_u *ItemOutcomeUpdateOne) SetStatus(v string) *ItemOutcomeUpdateOne {
	_u.mutation.SetStatus(v)
	return _u
}

// SetNillableStatus sets the "status" field if the given value is not nil.
func (_u *ItemOutcomeUpdateOne) SetNillableStatus(v *string) *ItemOutcomeUpdateOne {
	if v != nil {
		_u.SetStatus(*v)
	}
	return _u
}

// SetDetail sets the "detail" field.
func (_u *ItemOutcomeUpdateOne) SetDetail(v string) *ItemOutcomeUpdateOne {
	_u.mutation.SetDetail(v)
	return _u
}

// SetNillableDetail sets the "detail" field if the given value is not nil.
func (_u *ItemOutcomeUpdateOne) SetNillableDetail(v *string) *ItemOutcomeUpdateOne {
	if v != nil {
		_u.SetDetail(*v)
	}
	return _u
}

// SetPayload sets the "payload" field.
func (_u *ItemOutcomeUpdateOne) SetPayload(v string) *ItemOutcomeUpdateOne {
	_u.mutation.SetPayload(v)
	return _u
}

// SetNillablePayload sets the "payload" field if the given value is not nil.
func (_u *ItemOutcomeUpdateOne) SetNillablePayload(v *string) *ItemOutcomeUpdateOne {
	if v != nil {
		_u.SetPayload(*v)
	}
	return _u
}

// SetRecordedAt sets the "recorded_at" field.
func (_u *ItemOutcomeUpdateOne) SetRecordedAt(v time.Time) *ItemOutcomeUpdateOne {
	_u.mutation.SetRecordedAt(v)
	return _u
}

// SetNillableRecordedAt sets the "recorded_at" field if the given value is not nil.
func (_u *ItemOutcomeUpdateOne) SetNillableRecordedAt(v *time.Time) *ItemOutcomeUpdateOne {
	if v != nil {
		_u.SetRecordedAt(*v)
	}
	return _u
}

// Mutation returns the ItemOutcomeMutation object of the builder.
func (_u *ItemOutcomeUpdateOne) Mutation() *ItemOutcomeMutation {
	return _u.mutation
}

// Where appends a list predicates to the ItemOutcomeUpdate builder.
func (_u *ItemOutcomeUpdateOne) Where(ps ...predicate.ItemOutcome) *ItemOutcomeUpdateOne {
	_u.mutation.Where(ps...)
	return _u
}

// Select allows selecting one or more fields (columns) of the returned entity.
// The default is selecting all fields defined in the entity schema.
func (_u *ItemOutcomeUpdateOne) Select(field string, fields ...string) *ItemOutcomeUpdateOne {
	_u.fields = append([]string{field}, fields...)
	return _u
}

// Save executes the query and returns the updated ItemOutcome entity.
func (_u *ItemOutcomeUpdateOne) Save(ctx context.Context) (*ItemOutcome, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *ItemOutcomeUpdateOne) SaveX(ctx context.Context) *ItemOutcome {
	node, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return node
}

// Exec executes the query on the entity.
func (_u *ItemOutcomeUpdateOne) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *ItemOutcomeUpdateOne) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

func (_u *ItemOutcomeUpdateOne) sqlSave(ctx context.Context) (_node *ItemOutcome, err error) {
	_spec := sqlgraph.NewUpdateSpec(itemoutcome.Table, itemoutcome.Columns, sqlgraph.NewFieldSpec(itemoutcome.FieldID, field.TypeInt))
	id, ok := _u.mutation.ID()
	if !ok {
		return nil, &ValidationError{Name: "id", err: errors.New(`ent: missing "ItemOutcome.id" for update`)}
	}
	_spec.Node.ID.Value = id
	if fields := _u.fields; len(fields) > 0 {
		_spec.Node.Columns = make([]string, 0, len(fields))
		_spec.Node.Columns = append(_spec.Node.Columns, itemoutcome.FieldID)
		for _, f := range fields {
			if !itemoutcome.ValidColumn(f) {
				return nil, &ValidationError{Name: f, err: fmt.Errorf("ent: invalid field %q for query", f)}
			}
			if f != itemoutcome.FieldID {
				_spec.Node.Columns = append(_spec.Node.Columns, f)
			}
		}
	}
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.Status(); ok {
		_spec.SetField(itemoutcome.FieldStatus, field.TypeString, value)
	}
	if value, ok := _u.mutation.Detail(); ok {
		_spec.SetField(itemoutcome.FieldDetail, field.TypeString, value)
	}
	if value, ok := _u.mutation.Payload(); ok {
		_spec.SetField(itemoutcome.FieldPayload, field.TypeString, value)
	}
	if value, ok := _u.mutation.RecordedAt(); ok {
		_spec.SetField(itemoutcome.FieldRecordedAt, field.TypeTime, value)
	}
	_node = &ItemOutcome{config: _u.config}
	_spec.Assign = _node.assignValues
	_spec.ScanValues = _node.scanValues
	if err = sqlgraph.UpdateNode(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{itemoutcome.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	_u.mutation.done = true
	return _node, nil
}
