// Package demo walks through the library end to end for the demo command.
package demo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/morph"
	"github.com/aretw0/morph/pkg/codec"
	"github.com/aretw0/morph/pkg/model"
	"github.com/aretw0/morph/pkg/value"
)

// SampleConfig returns a configuration that exercises every dispatch branch.
func SampleConfig() value.Map {
	return value.Map{
		"multiply": value.Integer(12),
		"add":      value.Integer(-20),
		"textData": value.Text("This might be an error message"),
		"listData": value.Sequence(
			value.Integer(5), value.Text("hello"), value.Float(3.14), value.Integer(-2), value.Integer(10),
		),
		"anotherList": value.Sequence(
			value.Integer(1), value.Integer(2), value.Integer(3), value.Integer(4),
			value.Integer(5), value.Integer(6), value.Integer(7),
		),
		"nestedDict": value.Mapping(value.Map{
			"innerInt":  value.Integer(5),
			"innerText": value.Text("SUCCESS CASE"),
			"ignored":   value.Float(3.1415),
		}),
		"unhandledType": value.Other(map[int]struct{}{1: {}, 2: {}, 3: {}}),
	}
}

// userDocuments are decoded through model.DecodeUser; the second lacks an age.
var userDocuments = []string{
	"username: Frank\nage: 41\n",
	"username: Grace\n",
}

// Run prints the demo to w.
func Run(ctx context.Context, w io.Writer, engine *morph.Engine) error {
	for _, u := range []struct {
		name string
		age  int
	}{{"Alice", 30}, {"Bob", 25}} {
		user, err := model.NewUser(u.name, u.age)
		if err != nil {
			return err
		}
		data, _ := json.Marshal(user)
		fmt.Fprintf(w, "User: %s\n", data)
	}

	if _, err := model.NewUser("Mallory", -1); err != nil {
		fmt.Fprintf(w, "Rejected user: %v\n", err)
	}

	users, err := model.CreateUsers([]string{"Charlie", "Diana", "Eve"}, 20)
	if err != nil {
		return err
	}
	for idx, u := range users {
		fmt.Fprintf(w, "User #%d: %s, age %d\n", idx, u.Username, u.Age)
	}

	for _, raw := range userDocuments {
		doc, err := codec.Decode([]byte(raw), codec.FormatYAML)
		if err != nil {
			return err
		}
		u, err := model.DecodeUser(doc)
		if err != nil {
			fmt.Fprintf(w, "Rejected document: %v\n", err)
			continue
		}
		fmt.Fprintf(w, "Decoded user: %s, age %d\n", u.Username, u.Age)
	}

	result, err := engine.Transform(ctx, SampleConfig())
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Transformed configuration:")
	for _, key := range result.Keys() {
		fmt.Fprintf(w, "  %s: %s\n", key, result[key])
	}
	return nil
}
