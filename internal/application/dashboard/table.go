package dashboard

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"maintdesk/internal/application/ticket/dto"
	"maintdesk/internal/domain/ticket"
	vo "maintdesk/internal/domain/ticket/valueobjects"
	apperrors "maintdesk/internal/shared/errors"
	"maintdesk/internal/shared/logger"
)

// PaginationMode selects how a table pages its rows. The choice is fixed per
// table instance; one table never mixes the two disciplines.
type PaginationMode string

const (
	// ServerPaginated refetches on every filter or page change; the total
	// count comes from the server response.
	ServerPaginated PaginationMode = "server"
	// ClientPaginated makes one capped snapshot fetch up front and pages,
	// filters, and sorts in memory; the total count is the filtered length.
	ClientPaginated PaginationMode = "client"
)

// Filter field names accepted by SetFilter.
const (
	FieldStatus     = "status"
	FieldSection    = "section"
	FieldTechnician = "technician"
	FieldUser       = "user"
	FieldUnassigned = "unassigned"
	FieldOverdue    = "overdue"
)

// RowView augments a raw ticket with derived, read-only display fields. The
// derived fields exist only for presentation and filtering; they are never
// part of an outgoing update.
type RowView struct {
	Ticket         dto.TicketDTO
	SectionName    string
	FacilityName   string
	TechnicianName string
	IsOverdue      bool
	// searchBlob is the lowercase concatenation used for client-side search.
	searchBlob string
}

// TableConfig fixes a table instance's identity: the acting role, the current
// user, and the pagination discipline.
type TableConfig struct {
	Scope         vo.Role
	CurrentUserID uint
	Mode          PaginationMode
	PageSize      int
	// SnapshotCap bounds the up-front fetch in client-paginated mode.
	SnapshotCap int
	// Reports handles export requests; defaults to NopReportService.
	Reports ReportService
	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

// TableController owns the pagination, sort, filter, and search state of one
// ticket table and drives fetches against the ticket service. All exported
// methods are safe for concurrent use.
//
// Every fetch is tagged with a monotonically increasing sequence number; a
// response commits only while its sequence is still current, so a stale
// response can never overwrite state produced by a newer filter
// configuration.
type TableController struct {
	cfg      TableConfig
	tickets  TicketService
	refs     *ReferenceCache
	notifier Notifier
	updater  *OptimisticUpdater
	logger   logger.Interface

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	query      TableQuery
	rows       []RowView
	totalCount int64
	loading    bool
	err        error
	selected   *dto.TicketDTO
	seq        uint64
	closed     bool

	// client-paginated snapshot
	snapshot       []dto.TicketDTO
	snapshotLoaded bool

	unsubscribe func()
}

func NewTableController(
	cfg TableConfig,
	tickets TicketService,
	refs *ReferenceCache,
	notifier Notifier,
	log logger.Interface,
) *TableController {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 10
	}
	if cfg.SnapshotCap <= 0 {
		cfg.SnapshotCap = 1000
	}
	if cfg.Mode == "" {
		cfg.Mode = ServerPaginated
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if cfg.Reports == nil {
		cfg.Reports = NopReportService{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &TableController{
		cfg:      cfg,
		tickets:  tickets,
		refs:     refs,
		notifier: notifier,
		logger:   log,
		ctx:      ctx,
		cancel:   cancel,
		query: TableQuery{
			PageSize: cfg.PageSize,
		},
	}
	c.updater = NewOptimisticUpdater(tickets, cfg.Scope, notifier, c, log)

	if refs != nil {
		ch, unsubscribe := refs.Subscribe()
		c.unsubscribe = unsubscribe
		go c.watchReferences(ch)
	}

	return c
}

// Load issues the initial fetch. Call once after construction.
func (c *TableController) Load() error {
	c.mu.Lock()
	seq, q := c.beginFetchLocked()
	c.mu.Unlock()
	return c.fetch(seq, q)
}

// Refresh refetches the current page from the server. In client-paginated
// mode it refetches the whole snapshot.
func (c *TableController) Refresh() error {
	c.mu.Lock()
	c.snapshotLoaded = false
	seq, q := c.beginFetchLocked()
	c.mu.Unlock()
	return c.fetch(seq, q)
}

// SetPage moves to a zero-based page.
func (c *TableController) SetPage(page int) error {
	if page < 0 {
		page = 0
	}
	c.mu.Lock()
	c.query.Page = page
	seq, q := c.beginFetchLocked()
	c.mu.Unlock()
	return c.fetch(seq, q)
}

// SetPageSize changes the page size and resets to page 0.
func (c *TableController) SetPageSize(size int) error {
	if size <= 0 {
		size = c.cfg.PageSize
	}
	c.mu.Lock()
	c.query.PageSize = size
	c.query.Page = 0
	seq, q := c.beginFetchLocked()
	c.mu.Unlock()
	return c.fetch(seq, q)
}

// SetFilter mutates one filter field and resets to page 0 so the view never
// lands on a now out-of-range page.
func (c *TableController) SetFilter(field, value string) error {
	c.mu.Lock()
	switch field {
	case FieldStatus:
		c.query.StatusFilter = value
	case FieldSection:
		c.query.SectionFilter = value
	case FieldTechnician:
		c.query.TechnicianFilter = value
	case FieldUser:
		c.query.UserFilter = value
	case FieldUnassigned:
		c.query.UnassignedOnly, _ = strconv.ParseBool(value)
	case FieldOverdue:
		c.query.OverdueOnly, _ = strconv.ParseBool(value)
	default:
		c.mu.Unlock()
		return apperrors.NewValidationError(fmt.Sprintf("unknown filter field: %s", field))
	}
	c.query.Page = 0
	seq, q := c.beginFetchLocked()
	c.mu.Unlock()
	return c.fetch(seq, q)
}

// SetSort changes the sort order and resets to page 0.
func (c *TableController) SetSort(field, direction string) error {
	c.mu.Lock()
	c.query.SortField = field
	c.query.SortDirection = direction
	c.query.Page = 0
	seq, q := c.beginFetchLocked()
	c.mu.Unlock()
	return c.fetch(seq, q)
}

// Search sets the free-text search term and resets to page 0.
func (c *TableController) Search(term string) error {
	c.mu.Lock()
	c.query.SearchTerm = term
	c.query.Page = 0
	seq, q := c.beginFetchLocked()
	c.mu.Unlock()
	return c.fetch(seq, q)
}

// SelectRow marks a ticket as the edit target for a subsequent Update.
func (c *TableController) SelectRow(t *dto.TicketDTO) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = t
}

// Selected returns the current edit target, nil when none.
func (c *TableController) Selected() *dto.TicketDTO {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// Update applies the patch to the selected ticket: optimistic local apply,
// remote write, then reconcile-by-refetch on success or rollback on failure.
// On failure the selected ticket keeps the caller's edits so nothing entered
// is lost.
func (c *TableController) Update(ctx context.Context, patch ticket.Patch) error {
	c.mu.Lock()
	if c.selected == nil {
		c.mu.Unlock()
		return apperrors.NewValidationError("no ticket selected")
	}
	current := *c.selected
	prevRows := c.rows
	c.rows = applyPatchToRows(c.rows, current.ID, patch)
	c.mu.Unlock()

	if _, err := c.updater.Update(ctx, current, patch); err != nil {
		c.mu.Lock()
		c.rows = prevRows
		c.mu.Unlock()
		return err
	}
	return nil
}

// RequestReport asks the report collaborator to export the rows matching the
// current filter configuration. The descriptor sent is the same one a list
// fetch would use, so the export always matches what the table shows.
func (c *TableController) RequestReport(ctx context.Context, format string) error {
	c.mu.Lock()
	q := Compose(c.query, c.cfg.Scope, c.cfg.CurrentUserID)
	c.mu.Unlock()

	if err := c.cfg.Reports.Generate(ctx, ReportParams{Query: q, Format: format}); err != nil {
		c.logger.Errorw("report request failed", "format", format, "error", err)
		c.notifier.Error("failed to request report")
		return err
	}
	return nil
}

// Query returns a copy of the current table state.
func (c *TableController) Query() TableQuery {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Rows returns the visible row projection.
func (c *TableController) Rows() []RowView {
	c.mu.Lock()
	defer c.mu.Unlock()
	rows := make([]RowView, len(c.rows))
	copy(rows, c.rows)
	return rows
}

// TotalCount is the server count in server mode, the filtered in-memory
// length in client mode.
func (c *TableController) TotalCount() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalCount
}

func (c *TableController) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *TableController) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Close cancels any in-flight fetch and detaches from the reference cache.
// A closed controller never commits another response.
func (c *TableController) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.cancel()
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}

// beginFetchLocked bumps the sequence, marks loading, and composes the
// descriptor for the fetch about to be issued.
func (c *TableController) beginFetchLocked() (uint64, ticket.ListQuery) {
	c.seq++
	c.loading = true
	return c.seq, Compose(c.query, c.cfg.Scope, c.cfg.CurrentUserID)
}

func (c *TableController) fetch(seq uint64, q ticket.ListQuery) error {
	switch c.cfg.Mode {
	case ClientPaginated:
		return c.fetchClient(seq)
	default:
		return c.fetchServer(seq, q)
	}
}

func (c *TableController) fetchServer(seq uint64, q ticket.ListQuery) error {
	page, err := c.tickets.ListTickets(c.ctx, q)

	var rows []RowView
	if err == nil {
		rows = c.project(page.Results)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || seq != c.seq {
		// A newer query superseded this fetch; the response is stale and is
		// discarded without touching state.
		c.logger.Debugw("discarding stale ticket list response", "seq", seq, "current", c.seq)
		return nil
	}
	c.loading = false
	if err != nil {
		c.err = err
		c.logger.Errorw("ticket list fetch failed", "error", err)
		return err
	}
	c.err = nil
	c.rows = rows
	c.totalCount = page.Count
	return nil
}

func (c *TableController) fetchClient(seq uint64) error {
	c.mu.Lock()
	haveSnapshot := c.snapshotLoaded
	c.mu.Unlock()

	var fetched []dto.TicketDTO
	var fetchErr error
	if !haveSnapshot {
		// One larger fetch up front; only the role scope is applied
		// server-side, everything else happens in memory.
		q := Compose(TableQuery{PageSize: c.cfg.SnapshotCap}, c.cfg.Scope, c.cfg.CurrentUserID)
		page, err := c.tickets.ListTickets(c.ctx, q)
		if err != nil {
			fetchErr = err
		} else {
			fetched = page.Results
		}
	}

	// Resolve reference names before taking the lock: a cold cache means a
	// network fetch, and readers must never wait on one.
	names := c.resolveRefs()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || seq != c.seq {
		return nil
	}
	c.loading = false
	if fetchErr != nil {
		c.err = fetchErr
		c.logger.Errorw("ticket snapshot fetch failed", "error", fetchErr)
		return fetchErr
	}
	if !c.snapshotLoaded {
		c.snapshot = fetched
		c.snapshotLoaded = true
	}
	c.err = nil
	c.recomputeClientLocked(names)
	return nil
}

// recomputeClientLocked filters, sorts, and pages the snapshot in memory. The
// caller resolves the reference names before locking.
func (c *TableController) recomputeClientLocked(names refNames) {
	filtered := c.filterSnapshotLocked(names)
	c.totalCount = int64(len(filtered))

	sortRows(filtered, c.query.SortField, c.query.SortDirection)

	start := c.query.Page * c.query.PageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + c.query.PageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	c.rows = filtered[start:end]
}

func (c *TableController) filterSnapshotLocked(names refNames) []RowView {
	q := c.query
	now := c.cfg.Now()
	status := normalizeFilter(q.StatusFilter)
	section := parseIDFilter(q.SectionFilter)
	technician := parseIDFilter(q.TechnicianFilter)
	user := parseIDFilter(q.UserFilter)
	search := strings.ToLower(strings.TrimSpace(q.SearchTerm))

	all := c.projectWith(names, c.snapshot)
	out := make([]RowView, 0, len(all))
	for _, row := range all {
		t := row.Ticket
		if status != "" && t.Status != status {
			continue
		}
		if section != nil && t.Section != *section {
			continue
		}
		if technician != nil && (t.AssignedTo == nil || *t.AssignedTo != *technician) {
			continue
		}
		if user != nil && t.RaisedBy != *user {
			continue
		}
		if q.UnassignedOnly && t.AssignedTo != nil {
			continue
		}
		if q.OverdueOnly && !ticket.IsOverdue(statusOf(t), t.CreatedAt, now) {
			continue
		}
		if search != "" && !strings.Contains(row.searchBlob, search) {
			continue
		}
		out = append(out, row)
	}
	return out
}

// refNames holds the resolved reference lookup maps for one projection pass.
type refNames struct {
	sections    map[uint]string
	facilities  map[uint]string
	technicians map[uint]string
}

// resolveRefs fetches the reference lookup maps from the shared cache. It may
// hit the network on a cold cache, so it must never run under c.mu. Reference
// failures degrade to empty names; they never fail the list.
func (c *TableController) resolveRefs() refNames {
	names := refNames{
		sections:    map[uint]string{},
		facilities:  map[uint]string{},
		technicians: map[uint]string{},
	}
	if c.refs == nil {
		return names
	}
	if list, err := c.refs.Sections(c.ctx); err == nil {
		for _, s := range list {
			names.sections[s.ID] = s.Name
		}
	}
	if list, err := c.refs.Facilities(c.ctx); err == nil {
		for _, f := range list {
			names.facilities[f.ID] = f.Name
		}
	}
	if list, err := c.refs.Technicians(c.ctx); err == nil {
		for _, t := range list {
			names.technicians[t.ID] = t.FullName()
		}
	}
	return names
}

func (c *TableController) project(tickets []dto.TicketDTO) []RowView {
	return c.projectWith(c.resolveRefs(), tickets)
}

// projectWith builds the row views from already-resolved reference names. It
// does no I/O and is safe to call under c.mu.
func (c *TableController) projectWith(names refNames, tickets []dto.TicketDTO) []RowView {
	now := c.cfg.Now()
	rows := make([]RowView, 0, len(tickets))
	for _, t := range tickets {
		row := RowView{
			Ticket:       t,
			SectionName:  names.sections[t.Section],
			FacilityName: names.facilities[t.Facility],
			IsOverdue:    ticket.IsOverdue(statusOf(t), t.CreatedAt, now),
		}
		if t.AssignedTo != nil {
			row.TechnicianName = names.technicians[*t.AssignedTo]
		}
		row.searchBlob = strings.ToLower(strings.Join([]string{
			t.Number, t.Title, t.Description, t.Status,
			row.SectionName, row.FacilityName, row.TechnicianName,
		}, " "))
		rows = append(rows, row)
	}
	return rows
}

// watchReferences re-projects the visible rows whenever the shared reference
// cache broadcasts an invalidation, so no table keeps stale names.
func (c *TableController) watchReferences(ch <-chan Kind) {
	for {
		select {
		case <-c.ctx.Done():
			return
		case _, ok := <-ch:
			if !ok {
				return
			}
			names := c.resolveRefs()
			c.mu.Lock()
			if c.closed {
				c.mu.Unlock()
				return
			}
			if c.cfg.Mode == ClientPaginated && c.snapshotLoaded {
				c.recomputeClientLocked(names)
			} else {
				raw := make([]dto.TicketDTO, 0, len(c.rows))
				for _, r := range c.rows {
					raw = append(raw, r.Ticket)
				}
				c.rows = c.projectWith(names, raw)
			}
			c.mu.Unlock()
		}
	}
}

func statusOf(t dto.TicketDTO) vo.TicketStatus {
	return vo.TicketStatus(t.Status)
}

func applyPatchToRows(rows []RowView, id uint, patch ticket.Patch) []RowView {
	out := make([]RowView, len(rows))
	copy(out, rows)
	for i := range out {
		if out[i].Ticket.ID != id {
			continue
		}
		t := &out[i].Ticket
		if patch.Title != nil {
			t.Title = *patch.Title
		}
		if patch.Description != nil {
			t.Description = *patch.Description
		}
		if patch.Priority != nil {
			t.Priority = patch.Priority.String()
		}
		if patch.Section != nil {
			t.Section = *patch.Section
		}
		if patch.Facility != nil {
			t.Facility = *patch.Facility
		}
		if patch.Status != nil {
			t.Status = patch.Status.String()
			if patch.Status.IsPending() {
				t.PendingReason = patch.Reason()
			} else {
				t.PendingReason = ""
			}
		}
		if patch.AssignedTo != nil {
			id := *patch.AssignedTo
			t.AssignedTo = &id
		}
	}
	return out
}

// sortRows orders the rows in memory using the same sort vocabulary and
// fallback the repository applies, so switching pagination disciplines never
// changes what a sort field means.
func sortRows(rows []RowView, field, direction string) {
	name, desc, ok := ticket.OrderField(composeOrdering(field, direction))
	if !ok {
		name, desc = "created_at", true
	}
	sort.SliceStable(rows, func(i, j int) bool {
		cmp := compareTickets(rows[i].Ticket, rows[j].Ticket, name)
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
}

func compareTickets(a, b dto.TicketDTO, field string) int {
	switch field {
	case "id":
		return compareUint(a.ID, b.ID)
	case "ticket_no":
		return strings.Compare(a.Number, b.Number)
	case "title":
		return strings.Compare(a.Title, b.Title)
	case "status":
		return strings.Compare(a.Status, b.Status)
	case "priority":
		return strings.Compare(a.Priority, b.Priority)
	case "section":
		return compareUint(a.Section, b.Section)
	case "facility":
		return compareUint(a.Facility, b.Facility)
	case "raised_by":
		return compareUint(a.RaisedBy, b.RaisedBy)
	case "assigned_to":
		return compareUint(derefID(a.AssignedTo), derefID(b.AssignedTo))
	case "updated_at":
		return a.UpdatedAt.Compare(b.UpdatedAt)
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}

func compareUint(a, b uint) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func derefID(p *uint) uint {
	if p == nil {
		return 0
	}
	return *p
}
