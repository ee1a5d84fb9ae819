package server

import (
	"context"
	"net/http"
	"net/url"

	"github.com/UnknownOlympus/athena/internal/access"
	"github.com/UnknownOlympus/athena/internal/form"
	"github.com/UnknownOlympus/athena/internal/models"
)

const sickLeaveListPath = "/sick-leaves"

func sickLeaveCrumbs(r *http.Request, s *Server, current string) []crumb {
	return []crumb{
		{Label: s.Translator.T(r.Context(), "sick_leave.list"), Href: sickLeaveListPath},
		{Label: s.Translator.T(r.Context(), current)},
	}
}

func (s *Server) handleSickLeaveList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := models.SickLeaveQuery{
		GetQuery:   listQuery(r),
		EmployeeID: r.URL.Query().Get("employee_id"),
	}

	list, err := s.SickLeaves.FindManyWithCount(ctx, query)
	if err != nil {
		s.renderLookupError(w, r, err, "")
		return
	}

	content := listContent{
		SearchAction: sickLeaveListPath,
		Search:       query.SearchTerm,
		Columns:      []string{"field.start_date", "field.end_date", "field.doctor_note", "field.employee_id"},
		Total:        list.TotalCount,
	}
	if query.EmployeeID != "" {
		content.Filters = map[string]string{"employee_id": query.EmployeeID}
	}
	if s.can(r, access.EntitySickLeave, access.OperationCreate) {
		content.CreateHref = sickLeaveListPath + "/create"
		if query.EmployeeID != "" {
			content.CreateHref += "?" + url.Values{"employee_id": {query.EmployeeID}}.Encode()
		}
	}
	canEdit := s.can(r, access.EntitySickLeave, access.OperationUpdate)
	canDelete := s.can(r, access.EntitySickLeave, access.OperationDelete)

	for _, leave := range list.Data {
		employee := leave.EmployeeID
		if leave.Employee != nil && leave.Employee.Email != "" {
			employee = leave.Employee.Email
		}
		row := listRow{
			Cells: []string{
				form.FormatDate(leave.StartDate),
				form.FormatDate(leave.EndDate),
				s.yesNo(r, leave.DoctorNote),
				employee,
			},
			ViewHref: sickLeaveListPath + "/view/" + leave.ID,
		}
		if canEdit {
			row.EditHref = sickLeaveListPath + "/edit/" + leave.ID
		}
		if canDelete {
			row.DeleteAction = sickLeaveListPath + "/delete/" + leave.ID
		}
		content.Rows = append(content.Rows, row)
	}
	content.PrevHref, content.NextHref = pageLinks(r, list.TotalCount)

	s.render(w, r, http.StatusOK, "list", s.newView(r, "sick_leave.list", nil, content))
}

func (s *Server) handleSickLeaveCreatePage(w http.ResponseWriter, r *http.Request) {
	initial := s.SickLeaves.Defaults()

	// a create link from an employee page preselects that employee
	if id := r.URL.Query().Get("employee_id"); id != "" {
		initial.EmployeeID = id
		if employee, err := s.Employees.GetByID(r.Context(), id); err == nil {
			initial.Employee = &employee
		}
	}

	in := s.sickLeaveForm.New(initial)
	def := s.sickLeaveForm.Definition()
	content := newFormContent(r.Context(), s.Translator, def, in, sickLeaveListPath+"/create")
	s.render(w, r, http.StatusOK, "form",
		s.newView(r, "sick_leave.create", sickLeaveCrumbs(r, s, "sick_leave.create"), content))
}

func (s *Server) handleSickLeaveCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, http.StatusBadRequest, "error.generic", sickLeaveListPath)
		return
	}

	in := s.sickLeaveForm.Submit(r.Context(), string(access.OperationCreate), r.PostForm, s.SickLeaves.Create)
	respondSubmit(s, w, r, s.sickLeaveForm.Definition(), in, sickLeaveListPath+"/create",
		"sick_leave.create", sickLeaveCrumbs(r, s, "sick_leave.create"))
}

func (s *Server) handleSickLeaveView(w http.ResponseWriter, r *http.Request) {
	leave, err := s.SickLeaves.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		s.renderLookupError(w, r, err, sickLeaveListPath)
		return
	}

	t := func(id string) string { return s.Translator.T(r.Context(), id) }
	employee := detailRow{Label: t("field.employee_id"), Value: leave.EmployeeID}
	if leave.Employee != nil {
		employee.Value = leave.Employee.FullName + " <" + leave.Employee.Email + ">"
		if s.can(r, access.EntityEmployee, access.OperationRead) {
			employee.Href = "/employees/view/" + leave.EmployeeID
		}
	}

	content := detailContent{
		Rows: []detailRow{
			{Label: t("field.id"), Value: leave.ID},
			{Label: t("field.start_date"), Value: form.FormatDate(leave.StartDate)},
			{Label: t("field.end_date"), Value: form.FormatDate(leave.EndDate)},
			{Label: t("field.doctor_note"), Value: s.yesNo(r, leave.DoctorNote)},
			employee,
			{Label: t("field.created_at"), Value: leave.CreatedAt.Format(models.DateLayout)},
		},
		BackHref: sickLeaveListPath,
	}
	if s.can(r, access.EntitySickLeave, access.OperationUpdate) {
		content.EditHref = sickLeaveListPath + "/edit/" + leave.ID
	}

	s.render(w, r, http.StatusOK, "view",
		s.newView(r, "sick_leave.view", sickLeaveCrumbs(r, s, "sick_leave.view"), content))
}

func (s *Server) handleSickLeaveEditPage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	leave, err := s.SickLeaves.GetByID(r.Context(), id)
	if err != nil {
		s.renderLookupError(w, r, err, sickLeaveListPath)
		return
	}

	in := s.sickLeaveForm.New(leave)
	content := newFormContent(r.Context(), s.Translator, s.sickLeaveForm.Definition(), in,
		sickLeaveListPath+"/edit/"+id)
	s.render(w, r, http.StatusOK, "form",
		s.newView(r, "sick_leave.edit", sickLeaveCrumbs(r, s, "sick_leave.edit"), content))
}

func (s *Server) handleSickLeaveEdit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, http.StatusBadRequest, "error.generic", sickLeaveListPath)
		return
	}

	update := func(ctx context.Context, leave models.SickLeave) (models.SickLeave, error) {
		return s.SickLeaves.Update(ctx, id, leave)
	}
	in := s.sickLeaveForm.Submit(r.Context(), string(access.OperationUpdate), r.PostForm, update)
	respondSubmit(s, w, r, s.sickLeaveForm.Definition(), in, sickLeaveListPath+"/edit/"+id,
		"sick_leave.edit", sickLeaveCrumbs(r, s, "sick_leave.edit"))
}

func (s *Server) handleSickLeaveDelete(w http.ResponseWriter, r *http.Request) {
	s.deleteRecord(w, r, access.EntitySickLeave, sickLeaveListPath, s.SickLeaves.Delete)
}
