package form

import "html/template"

// Widget markup lives in one template set, one named template per widget
// kind. All value interpolation goes through html/template so everything a
// user ever typed is escaped on the way out.
var widgetTemplates = template.Must(template.New("widgets").Parse(`
{{define "input"}}<input type="{{.InputType}}" id="field-{{.ID}}" name="{{.Name}}" value="{{.Value}}"{{if .Placeholder}} placeholder="{{.Placeholder}}"{{end}}{{if .MaxLength}} maxlength="{{.MaxLength}}"{{end}}{{if .Required}} required{{end}}>{{end}}

{{define "textarea"}}<textarea id="field-{{.ID}}" name="{{.Name}}" rows="6"{{if .Placeholder}} placeholder="{{.Placeholder}}"{{end}}{{if .Required}} required{{end}}>{{.Value}}</textarea>{{end}}

{{define "wysiwyg"}}<textarea id="field-{{.ID}}" name="{{.Name}}" class="wysiwyg-editor" rows="10"{{if .Required}} required{{end}}>{{.Value}}</textarea>{{end}}

{{define "number"}}<input type="number" id="field-{{.ID}}" name="{{.Name}}" value="{{.Value}}" step="{{.Step}}"{{if .Placeholder}} placeholder="{{.Placeholder}}"{{end}}{{if .Required}} required{{end}}>{{end}}

{{define "checkbox"}}<input type="hidden" name="{{.Name}}" value="0"><input type="checkbox" id="field-{{.ID}}" name="{{.Name}}" value="1"{{if .Checked}} checked{{end}}>{{end}}

{{define "select"}}<select id="field-{{.ID}}" name="{{.Name}}"{{if .Required}} required{{end}}>
<option value="">--</option>
{{range .Options}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Value}}</option>
{{end}}</select>{{end}}

{{define "radio"}}<fieldset id="field-{{.ID}}">
{{$f := .}}{{range .Options}}<label><input type="radio" name="{{$f.Name}}" value="{{.Value}}"{{if .Selected}} checked{{end}}{{if $f.Required}} required{{end}}> {{.Value}}</label>
{{end}}</fieldset>{{end}}

{{define "file"}}{{if .HasValue}}{{if .IsImage}}<div class="file-preview"><img src="{{.Value}}" alt="current image" class="thumbnail"></div>{{else}}<div class="file-preview"><span class="filename">{{.Value}}</span></div>{{end}}{{end}}<input type="file" id="field-{{.ID}}" name="{{.Name}}"{{if .Accept}} accept="{{.Accept}}"{{end}}{{if .Required}} required{{end}}>{{end}}

{{define "date"}}<input type="date" id="field-{{.ID}}" name="{{.Name}}" value="{{.Value}}"{{if .Required}} required{{end}}>{{end}}

{{define "datetime-local"}}<input type="datetime-local" id="field-{{.ID}}" name="{{.Name}}" value="{{.Value}}"{{if .Required}} required{{end}}>{{end}}

{{define "json-editor"}}<textarea id="field-{{.ID}}" name="{{.Name}}" class="json-editor" rows="8" spellcheck="false"{{if .Required}} required{{end}}>{{.Value}}</textarea>{{end}}

{{define "pagebuilder"}}<textarea id="field-{{.ID}}" name="{{.Name}}" class="pagebuilder-input" hidden>{{.Value}}</textarea>{{end}}

{{define "wrapper"}}<div class="form-field form-field-{{.Widget}}"{{if .HasErrors}} data-invalid="true"{{end}}>
<label for="field-{{.ID}}">{{.Label}}{{if .Required}} <span class="required">*</span>{{end}}</label>
{{.Control}}
{{if .HelpText}}<p class="help-text">{{.HelpText}}</p>{{end}}
{{range .Errors}}<p class="field-error">{{.}}</p>
{{end}}</div>
{{end}}

{{define "tabs"}}<div class="translation-tabs">
<nav class="tab-nav">
{{range .Tabs}}<button type="button" class="tab-link{{if .Active}} active{{end}}" data-locale="{{.Locale}}">{{.Locale}}</button>
{{end}}</nav>
{{range .Tabs}}<div class="tab-pane{{if .Active}} active{{end}}" data-locale="{{.Locale}}">
{{range .Fields}}{{.}}{{end}}</div>
{{end}}</div>
{{end}}
`))
