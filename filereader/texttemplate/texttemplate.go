package texttemplate

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"text/template"

	"github.com/Masterminds/sprig"
)

var funcs = template.FuncMap{
	"toJSON": func(v interface{}) (string, error) {
		data, err := json.Marshal(v)
		return string(data), err
	},
}

func Parse(name string, raw string, extra template.FuncMap) (*template.Template, error) {
	return template.New(name).Funcs(sprig.HermeticTxtFuncMap()).Funcs(funcs).Funcs(extra).Parse(raw)
}

func ParseFile(filename string, extra template.FuncMap) (*template.Template, error) {
	raw, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Parse(filename, string(raw), extra)
}

// RenderString renders an in-memory template, typically an embedded asset.
func RenderString(name string, raw string, data interface{}) (string, error) {
	tmpl, err := Parse(name, raw, nil)
	if err != nil {
		return "", err
	}

	var buff bytes.Buffer
	if err := tmpl.Execute(&buff, data); err != nil {
		return "", err
	}
	return buff.String(), nil
}

func GetString(filename string, data interface{}) (string, error) {
	tmpl, err := ParseFile(filename, nil)
	if err != nil {
		return "", err
	}

	var buff bytes.Buffer
	if err := tmpl.Execute(&buff, data); err != nil {
		return "", err
	}
	return buff.String(), nil
}
