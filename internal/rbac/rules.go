package rbac

// Default policy. Trainees take quizzes and see their own history; admins
// additionally manage the bank and users. Every permission a route guards
// must appear here.
var RolePermissions = map[string][]string{
	"trainee": {
		"bank:view",
		"quiz:take",
		"records:view-own",
	},
	"admin": {
		"bank:import",
		"bank:inspect",
		"bank:view",
		"quiz:take",
		"records:view-all",
		"records:view-own",
		"users:manage",
	},
}
