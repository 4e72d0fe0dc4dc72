// Campusdocs - Read-only Content API for Institutional Websites
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusdocs

package validation

// DeptIDParams is a numeric department id path parameter.
type DeptIDParams struct {
	DeptID string `validate:"required,numeric,max=9"`
}

// ScopeParams is a department scope token used for identifier matching.
type ScopeParams struct {
	Dept string `validate:"required,max=64,scope"`
}

// DeptParams is a free-form department key, such as "CSE" or "5".
type DeptParams struct {
	Dept string `validate:"required,max=64"`
}

// StaffIDParams is a staff member's composite identifier.
type StaffIDParams struct {
	UniqueID string `validate:"required,max=128,compositeid"`
}

// MOUParams selects a department's MOUs, optionally narrowed to one id.
type MOUParams struct {
	Dept     string `validate:"required,max=64"`
	UniqueID string `validate:"omitempty,max=64"`
}

// ResearchParams selects research data by department and year. Blank values
// are left to the content service, which reports them together.
type ResearchParams struct {
	Dept string `validate:"max=64"`
	Year string `validate:"omitempty,max=16"`
}
