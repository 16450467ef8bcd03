package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rnwolfe/momentum/internal/achievement"
	"github.com/rnwolfe/momentum/internal/logging"
	"github.com/rnwolfe/momentum/internal/tui"
	"github.com/rnwolfe/momentum/internal/ui"
)

var badgesAll bool

var badgesCmd = &cobra.Command{
	Use:     "badges",
	Aliases: []string{"b"},
	Short:   "Show achievements and badge progress",
	Args:    cobra.NoArgs,
	RunE:    runBadges,
}

var badgesEquipCmd = &cobra.Command{
	Use:   "equip <slot> [badge-id]",
	Short: "Equip an unlocked badge into slot 1-3",
	Long: `Equip an unlocked badge into one of three profile slots.

Badge IDs look like longest_current_streak:30. Without an ID, an
interactive picker lists every badge; locked ones can't be chosen.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runBadgesEquip,
}

var badgesUnequipCmd = &cobra.Command{
	Use:   "unequip <slot>",
	Short: "Clear a badge slot",
	Args:  cobra.ExactArgs(1),
	RunE:  runBadgesUnequip,
}

func init() {
	badgesCmd.Flags().BoolVarP(&badgesAll, "all", "a", false, "List every milestone, not just progress")
	badgesCmd.AddCommand(badgesEquipCmd, badgesUnequipCmd)
}

// badgeName is the display name of a badge, e.g. "Streak · 30 days".
func badgeName(id achievement.BadgeID) string {
	d, ok := achievement.Lookup(id.AchievementID)
	if !ok {
		return id.String()
	}
	return d.SlotTitle + " · " + achievement.MilestoneLabel(d.Metric, id.Milestone)
}

func runBadges(_ *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.ensureProfile(); err != nil {
		return err
	}
	metrics, _, err := a.metrics()
	if err != nil {
		return err
	}
	slots, err := a.loadSlots()
	if err != nil {
		return err
	}
	sections := achievement.BuildSections(metrics, slots)

	ui.Header("Equipped")
	for i, id := range slots {
		name := ui.Muted.Render("empty")
		if !id.IsZero() {
			name = badgeName(id)
		}
		ui.Kv(fmt.Sprintf("  Slot %d", i+1), name)
	}

	for _, sec := range sections {
		ui.Header(fmt.Sprintf("%s  %s", sec.Title, ui.Muted.Render(fmt.Sprintf("%d/%d", sec.UnlockedCount, len(sec.Badges)))))
		for _, b := range sec.Badges {
			if !badgesAll && !b.Unlocked && b.Milestone != sec.NextMilestone {
				continue
			}
			fmt.Println("  " + badgeLine(b))
		}
		if sec.NextMilestone > 0 {
			fmt.Printf("  %s\n", ui.Muted.Render(fmt.Sprintf("%d / %d to next", sec.MetricValue, sec.NextMilestone)))
		}
	}
	fmt.Println()
	ui.Tip("`momentum badges equip 1` to show one off.")
	return nil
}

func badgeLine(b achievement.Badge) string {
	if !b.Unlocked {
		return ui.Muted.Render(ui.IconLock + " " + b.MilestoneLabel)
	}
	style := lipgloss.NewStyle().Foreground(ui.TierColor(string(b.Variant))).Bold(true)
	line := style.Render(ui.IconBadge+" "+b.MilestoneLabel) + " " + ui.Muted.Render(string(b.Variant))
	if b.Equipped() {
		slots := make([]string, len(b.EquippedSlots))
		for i, s := range b.EquippedSlots {
			slots[i] = strconv.Itoa(s)
		}
		line += " " + ui.Accent.Render("slot "+strings.Join(slots, ","))
	}
	return line
}

func parseSlot(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > achievement.SlotCount {
		return 0, fmt.Errorf("slot must be 1-%d, got %q", achievement.SlotCount, s)
	}
	return n, nil
}

// badgeItem adapts a badge to the picker.
type badgeItem struct{ achievement.Badge }

func (b badgeItem) FilterValue() string { return badgeName(b.ID) + " " + b.ID.String() }
func (b badgeItem) Title() string       { return badgeName(b.ID) }
func (b badgeItem) Description() string {
	if !b.Unlocked {
		return fmt.Sprintf("locked · %d / %d", b.MetricValue, b.Milestone)
	}
	return string(b.Variant)
}
func (b badgeItem) Locked() bool { return !b.Unlocked }
func (b badgeItem) Color() lipgloss.Color {
	return ui.TierColor(string(b.Variant))
}

var errNoBadgeChosen = errors.New("no badge chosen")

func runBadgesEquip(_ *cobra.Command, args []string) error {
	slot, err := parseSlot(args[0])
	if err != nil {
		return err
	}
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	metrics, _, err := a.metrics()
	if err != nil {
		return err
	}
	slots, err := a.loadSlots()
	if err != nil {
		return err
	}
	sections := achievement.BuildSections(metrics, slots)

	var id achievement.BadgeID
	if len(args) == 2 {
		parsed, ok := achievement.ParseBadgeID(args[1])
		if !ok {
			return fmt.Errorf("unknown badge %q", args[1])
		}
		id = parsed
	} else {
		if !tui.IsTTY() {
			return fmt.Errorf("badge id required when not running in a terminal")
		}
		picked, err := pickBadge(sections, slot)
		if err != nil {
			return err
		}
		id = picked
	}

	if !isUnlocked(sections, id) {
		return fmt.Errorf("%s is still locked", badgeName(id))
	}
	next, _ := slots.Equip(slot, id)
	if err := a.saveSlots(next); err != nil {
		return err
	}
	logging.Info("badge equipped", "slot", slot, "badge", id.String())
	ui.Ok(fmt.Sprintf("Slot %d: %s", slot, badgeName(id)))
	return nil
}

func pickBadge(sections []achievement.Section, slot int) (achievement.BadgeID, error) {
	var items []tui.Item
	for _, sec := range sections {
		for _, b := range sec.Badges {
			items = append(items, badgeItem{b})
		}
	}
	chosen, err := tui.Run(items, tui.WithTitle(fmt.Sprintf("Equip slot %d", slot)))
	if err != nil {
		return achievement.BadgeID{}, err
	}
	if chosen == nil {
		return achievement.BadgeID{}, errNoBadgeChosen
	}
	return chosen.(badgeItem).ID, nil
}

func isUnlocked(sections []achievement.Section, id achievement.BadgeID) bool {
	for _, b := range achievement.UnlockedBadges(sections) {
		if b.ID == id {
			return true
		}
	}
	return false
}

func runBadgesUnequip(_ *cobra.Command, args []string) error {
	slot, err := parseSlot(args[0])
	if err != nil {
		return err
	}
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	slots, err := a.loadSlots()
	if err != nil {
		return err
	}
	next, _ := slots.Equip(slot, achievement.BadgeID{})
	if err := a.saveSlots(next); err != nil {
		return err
	}
	logging.Info("badge unequipped", "slot", slot)
	ui.Ok(fmt.Sprintf("Slot %d cleared", slot))
	return nil
}
