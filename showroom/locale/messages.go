package locale

// Message identifiers, shared by every locale file.
const (
	MsgGreeting       = "greeting"
	MsgShareContact   = "share_contact"
	MsgPhoneShared    = "phone_shared"
	MsgPhoneTyped     = "phone_typed"
	MsgPasswordPrompt = "password_prompt"
	MsgPasswordOK     = "password_ok"
	MsgPasswordBad    = "password_bad"
	MsgSalesContact   = "sales_contact"
	MsgCancelled      = "cancelled"
	MsgStartHint      = "start_hint"
	MsgPhoneReprompt  = "phone_reprompt"
	MsgRateLimited    = "rate_limited"
	MsgAdminOnly      = "admin_only"
	MsgStats          = "stats"

	MsgCmdStart  = "cmd_start"
	MsgCmdCancel = "cmd_cancel"
	MsgCmdStats  = "cmd_stats"

	MsgInventoryTitle  = "inventory_title"
	MsgInventoryPage   = "inventory_page"
	MsgInventoryPrice  = "inventory_price"
	MsgInventoryStock  = "inventory_stock"
	MsgInventoryUnit   = "inventory_unit"
	MsgInventoryFooter = "inventory_footer"

	MsgNavPrev      = "nav_prev"
	MsgNavNext      = "nav_next"
	MsgNavIndicator = "nav_indicator"
)

// AllMessages lists every identifier a locale file must define.
var AllMessages = []string{
	MsgGreeting, MsgShareContact, MsgPhoneShared, MsgPhoneTyped,
	MsgPasswordPrompt, MsgPasswordOK, MsgPasswordBad, MsgSalesContact,
	MsgCancelled, MsgStartHint, MsgPhoneReprompt, MsgRateLimited,
	MsgAdminOnly, MsgStats,
	MsgCmdStart, MsgCmdCancel, MsgCmdStats,
	MsgInventoryTitle, MsgInventoryPage, MsgInventoryPrice, MsgInventoryStock,
	MsgInventoryUnit, MsgInventoryFooter,
	MsgNavPrev, MsgNavNext, MsgNavIndicator,
}
