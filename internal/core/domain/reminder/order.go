package reminder

type OrderBy struct {
	v string
}

var (
	OrderByNotSet        OrderBy = OrderBy{}
	OrderByIDAsc         OrderBy = OrderBy{v: "id_asc"}
	OrderByEventTimeAsc  OrderBy = OrderBy{v: "event_time_asc"}
	OrderByEventTimeDesc OrderBy = OrderBy{v: "event_time_desc"}
)
