// Package goform provides declarative form definition, data binding and
// validation:
//
//   - A Schema of typed field declarations (UnboundField) bound per form
//     instance into mutable field state
//   - Data binding from multi-valued wire input (Formdata) and/or a
//     source object, with per-type coercion and per-field error
//     collection
//   - A validator chain with explicit continue/fail/stop outcomes
//     (Result)
//   - Write-back of validated data onto a target struct or map
//     (PopulateObj)
//
// Design policy:
//   - Keep only public APIs in the root package; message lookup lives
//     under i18n/, reusable validators under validators/, the YAML
//     loader under schema/.
//   - Nothing raised during Process or Validate escapes to the caller
//     except configuration errors; per-field problems surface through
//     Errors().
//
// Typical usage:
//
//	sch := goform.NewSchema().
//	    Field("name", goform.String(goform.WithValidators(validators.DataRequired()))).
//	    Field("age", goform.Integer()).
//	    MustBuild()
//
//	form, err := sch.NewForm(req.PostForm)
//	if err != nil {
//	    // configuration problem, not user input
//	}
//	if form.Validate() {
//	    err = form.PopulateObj(&user)
//	}
package goform
