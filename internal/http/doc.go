// Package http provides HTTP handlers and middleware for the audit planner API.
//
// The router exposes the following endpoints:
//   - GET /companies, POST /companies, GET /companies/{id}, PUT /companies/{id},
//     DELETE /companies/{id}: company management endpoints exchanging the
//     `companyDTO` payload defined in company_handler.go.
//   - GET /companies/{id}/audits: audits of one company.
//   - GET /audits, POST /audits, GET /audits/{id}, PUT /audits/{id},
//     DELETE /audits/{id}: audit engagement endpoints exchanging the `auditDTO`
//     payload defined in audit_handler.go. Listing accepts an optional
//     `company_id` query filter.
//   - GET /themes, POST /themes, GET /themes/{id}, PUT /themes/{id},
//     DELETE /themes/{id}: theme catalog endpoints. The reserved system themes
//     are read-only.
//   - GET /audits/{id}/interviews, POST /audits/{id}/interviews,
//     DELETE /interviews/{id}: the stored schedule of an audit plus manual
//     interview management.
//   - POST /audits/{id}/plan/preview: generates a plan without persisting it.
//   - POST /audits/{id}/plan: generates and commits a plan, replacing the
//     previously committed one. Both plan endpoints exchange the payloads
//     defined in plan_handler.go.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth. All user-visible messages are in
// French, matching the engagement tooling.
package http
