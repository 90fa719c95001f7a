package user

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"

	// Deliveries
	PermissionDeliveryView    Permission = "delivery.view"
	PermissionDeliveryManage  Permission = "delivery.manage"
	PermissionDeliveryExecute Permission = "delivery.execute"

	// Leave Management
	PermissionLeaveCreate  Permission = "leave.create"
	PermissionLeaveViewAll Permission = "leave.view_all"
	PermissionLeaveApprove Permission = "leave.approve"

	// Expenses
	PermissionExpenseCreate  Permission = "expense.create"
	PermissionExpenseApprove Permission = "expense.approve"

	// Weigh tickets
	PermissionWeighTicketView   Permission = "weigh_ticket.view"
	PermissionWeighTicketCreate Permission = "weigh_ticket.create"

	// Employees
	PermissionInvitationManage Permission = "invitation.manage"

	// Payroll
	PermissionPayrollManage Permission = "payroll.manage"

	// Reports
	PermissionDashboardView Permission = "dashboard.view"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionViewOwnProfile,
		PermissionDeliveryView,
		PermissionDeliveryManage,
		PermissionDeliveryExecute,
		PermissionLeaveCreate,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionExpenseCreate,
		PermissionExpenseApprove,
		PermissionWeighTicketView,
		PermissionWeighTicketCreate,
		PermissionInvitationManage,
		PermissionPayrollManage,
		PermissionDashboardView,
	},
	RoleHR: {
		PermissionViewOwnProfile,
		PermissionDeliveryView,
		PermissionLeaveCreate,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionExpenseCreate,
		PermissionExpenseApprove,
		PermissionWeighTicketView,
		PermissionInvitationManage,
		PermissionPayrollManage,
		PermissionDashboardView,
	},
	RoleDriver: {
		PermissionViewOwnProfile,
		PermissionDeliveryView,
		PermissionDeliveryExecute,
		PermissionLeaveCreate,
		PermissionExpenseCreate,
		PermissionWeighTicketView,
		PermissionWeighTicketCreate,
	},
	RoleMember: {
		PermissionViewOwnProfile,
		PermissionLeaveCreate,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
