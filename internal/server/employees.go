package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/UnknownOlympus/athena/internal/access"
	"github.com/UnknownOlympus/athena/internal/form"
	"github.com/UnknownOlympus/athena/internal/lib/logger/sl"
	"github.com/UnknownOlympus/athena/internal/models"
)

const employeeListPath = "/employees"

func employeeCrumbs(r *http.Request, s *Server, current string) []crumb {
	return []crumb{
		{Label: s.Translator.T(r.Context(), "employee.list"), Href: employeeListPath},
		{Label: s.Translator.T(r.Context(), current)},
	}
}

func (s *Server) handleEmployeeList(w http.ResponseWriter, r *http.Request) {
	query := models.EmployeeQuery{
		GetQuery: listQuery(r),
		Email:    r.URL.Query().Get("email"),
	}

	list, err := s.Employees.FindManyWithCount(r.Context(), query)
	if err != nil {
		s.renderLookupError(w, r, err, "")
		return
	}

	content := listContent{
		SearchAction: employeeListPath,
		Search:       query.SearchTerm,
		Columns: []string{
			"field.full_name", "field.position", "field.email", "field.phone", "field.sick_leave_count",
		},
		Total: list.TotalCount,
	}
	if s.can(r, access.EntityEmployee, access.OperationCreate) {
		content.CreateHref = employeeListPath + "/create"
	}
	canEdit := s.can(r, access.EntityEmployee, access.OperationUpdate)
	canDelete := s.can(r, access.EntityEmployee, access.OperationDelete)

	for _, employee := range list.Data {
		count := 0
		if employee.Count != nil {
			count = employee.Count.SickLeave
		}
		row := listRow{
			Cells: []string{
				employee.FullName, employee.Position, employee.Email, employee.Phone, strconv.Itoa(count),
			},
			ViewHref: employeeListPath + "/view/" + employee.ID,
		}
		if canEdit {
			row.EditHref = employeeListPath + "/edit/" + employee.ID
		}
		if canDelete {
			row.DeleteAction = employeeListPath + "/delete/" + employee.ID
		}
		content.Rows = append(content.Rows, row)
	}
	content.PrevHref, content.NextHref = pageLinks(r, list.TotalCount)

	s.render(w, r, http.StatusOK, "list", s.newView(r, "employee.list", nil, content))
}

func (s *Server) handleEmployeeCreatePage(w http.ResponseWriter, r *http.Request) {
	in := s.employeeForm.New(s.Employees.Defaults())
	content := newFormContent(r.Context(), s.Translator, s.employeeForm.Definition(), in,
		employeeListPath+"/create")
	s.render(w, r, http.StatusOK, "form",
		s.newView(r, "employee.create", employeeCrumbs(r, s, "employee.create"), content))
}

func (s *Server) handleEmployeeCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, http.StatusBadRequest, "error.generic", employeeListPath)
		return
	}

	in := s.employeeForm.Submit(r.Context(), string(access.OperationCreate), r.PostForm, s.Employees.Create)
	respondSubmit(s, w, r, s.employeeForm.Definition(), in, employeeListPath+"/create",
		"employee.create", employeeCrumbs(r, s, "employee.create"))
}

func (s *Server) handleEmployeeView(w http.ResponseWriter, r *http.Request) {
	employee, err := s.Employees.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		s.renderLookupError(w, r, err, employeeListPath)
		return
	}

	t := func(id string) string { return s.Translator.T(r.Context(), id) }
	count := 0
	if employee.Count != nil {
		count = employee.Count.SickLeave
	}

	content := detailContent{
		Rows: []detailRow{
			{Label: t("field.id"), Value: employee.ID},
			{Label: t("field.full_name"), Value: employee.FullName},
			{Label: t("field.position"), Value: employee.Position},
			{Label: t("field.email"), Value: employee.Email},
			{Label: t("field.phone"), Value: employee.Phone},
			{Label: t("field.hire_date"), Value: form.FormatDate(employee.HireDate)},
			{Label: t("field.sick_leave_count"), Value: strconv.Itoa(count)},
		},
		BackHref: employeeListPath,
	}
	if s.can(r, access.EntityEmployee, access.OperationUpdate) {
		content.EditHref = employeeListPath + "/edit/" + employee.ID
	}
	filter := url.Values{"employee_id": {employee.ID}}.Encode()
	if s.can(r, access.EntitySickLeave, access.OperationRead) {
		content.Links = append(content.Links, crumb{Label: t("sick_leave.list"), Href: sickLeaveListPath + "?" + filter})
	}
	if s.can(r, access.EntitySickLeave, access.OperationCreate) {
		content.Links = append(content.Links,
			crumb{Label: t("sick_leave.create"), Href: sickLeaveListPath + "/create?" + filter})
	}

	s.render(w, r, http.StatusOK, "view",
		s.newView(r, "employee.view", employeeCrumbs(r, s, "employee.view"), content))
}

func (s *Server) handleEmployeeEditPage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	employee, err := s.Employees.GetByID(r.Context(), id)
	if err != nil {
		s.renderLookupError(w, r, err, employeeListPath)
		return
	}

	in := s.employeeForm.New(employee)
	content := newFormContent(r.Context(), s.Translator, s.employeeForm.Definition(), in,
		employeeListPath+"/edit/"+id)
	s.render(w, r, http.StatusOK, "form",
		s.newView(r, "employee.edit", employeeCrumbs(r, s, "employee.edit"), content))
}

func (s *Server) handleEmployeeEdit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, http.StatusBadRequest, "error.generic", employeeListPath)
		return
	}

	update := func(ctx context.Context, employee models.Employee) (models.Employee, error) {
		return s.Employees.Update(ctx, id, employee)
	}
	in := s.employeeForm.Submit(r.Context(), string(access.OperationUpdate), r.PostForm, update)
	respondSubmit(s, w, r, s.employeeForm.Definition(), in, employeeListPath+"/edit/"+id,
		"employee.edit", employeeCrumbs(r, s, "employee.edit"))
}

func (s *Server) handleEmployeeDelete(w http.ResponseWriter, r *http.Request) {
	s.deleteRecord(w, r, access.EntityEmployee, employeeListPath, s.Employees.Delete)
}

type optionsResponse struct {
	Data  []models.Option `json:"data"`
	Count int             `json:"count"`
}

// handleEmployeeOptions feeds the employee async select.
func (s *Server) handleEmployeeOptions(w http.ResponseWriter, r *http.Request) {
	d := form.NewDecoder(r.URL.Query())

	list, err := s.Employees.Options(r.Context(), d.String("q"), d.Int("limit"))
	if err != nil {
		s.Log.ErrorContext(r.Context(), "failed to load employee options", sl.Err(err))
		writeJSON(w, r, s, http.StatusInternalServerError, map[string]string{
			"error": s.Translator.T(r.Context(), "error.generic"),
		})
		return
	}

	data := list.Data
	if data == nil {
		data = []models.Option{}
	}
	writeJSON(w, r, s, http.StatusOK, optionsResponse{Data: data, Count: list.TotalCount})
}

func (s *Server) forbiddenJSON(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, s, http.StatusForbidden, map[string]string{
		"error": s.Translator.T(r.Context(), "error.forbidden"),
	})
}

func writeJSON(w http.ResponseWriter, r *http.Request, s *Server, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Log.ErrorContext(r.Context(), "failed to encode response", sl.Err(err))
	}
}
