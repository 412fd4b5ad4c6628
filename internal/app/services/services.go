// Package services holds the business logic of the club backend.
//
// Services defined in this package:
//   - MembershipService: the join request lifecycle (request, decide, leave, list)
//   - ClubService: club catalogue, explore and details views
//   - ActivityService: club events and announcements
//   - DashboardService: admin and student aggregate views
//   - AuthService: registration and sign-in
//
// Services perform no authorization; the policy package wraps them with role
// and ownership checks.
package services
