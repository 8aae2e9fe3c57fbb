package grammars

import (
	"fmt"

	"github.com/reusee/phpedit/errs"
	"github.com/reusee/phpedit/nodes"
	"github.com/reusee/phpedit/parsers"
)

func checkNamespace(r *parsers.Reduction, ns *nodes.Namespace) {
	for _, stmt := range ns.Stmts {
		if _, ok := stmt.(*nodes.Namespace); ok {
			r.Emit(errs.New("Namespace declarations cannot be nested", stmt.Attributes()))
		}
	}
}

func checkClassName(r *parsers.Reduction, name *nodes.Identifier, namePos int) {
	if name != nil && name.IsSpecialClassName() {
		r.Emit(errs.Newf(r.AttrsAt(namePos), "Cannot use '%s' as class name as it is reserved", name.Name))
	}
}

func checkImplementedInterfaces(r *parsers.Reduction, interfaces []*nodes.Name) {
	for _, iface := range interfaces {
		if iface.IsSpecialClassName() {
			r.Emit(errs.Newf(iface.Attributes(), "Cannot use '%s' as interface name as it is reserved", iface.Name))
		}
	}
}

func checkClass(r *parsers.Reduction, class *nodes.Class, namePos int) {
	checkClassName(r, class.Name, namePos)
	if class.Extends != nil && class.Extends.IsSpecialClassName() {
		r.Emit(errs.Newf(class.Extends.Attributes(), "Cannot use '%s' as class name as it is reserved", class.Extends.Name))
	}
	checkImplementedInterfaces(r, class.Implements)
}

func checkInterface(r *parsers.Reduction, iface *nodes.Interface, namePos int) {
	checkClassName(r, iface.Name, namePos)
	checkImplementedInterfaces(r, iface.Extends)
}

func checkClassMethod(r *parsers.Reduction, method *nodes.ClassMethod, modifierPos int) {
	if method.Flags&nodes.ModifierStatic != 0 {
		switch method.Name.LowerString() {
		case "__construct", "__destruct", "__clone":
			r.Emit(errs.Newf(r.AttrsAt(modifierPos), "Method %s() cannot be static", method.Name.Name))
		}
	}
	if method.Flags&nodes.ModifierReadonly != 0 {
		r.Emit(errs.Newf(r.AttrsAt(modifierPos), "Method %s() cannot be readonly", method.Name.Name))
	}
}

func checkClassConst(r *parsers.Reduction, c *nodes.ClassConst, modifierPos int) {
	for _, m := range []struct {
		flag    int
		keyword string
	}{
		{nodes.ModifierStatic, "static"},
		{nodes.ModifierAbstract, "abstract"},
		{nodes.ModifierReadonly, "readonly"},
	} {
		if c.Flags&m.flag != 0 {
			r.Emit(errs.Newf(r.AttrsAt(modifierPos), "Cannot use '%s' as constant modifier", m.keyword))
		}
	}
}

func checkProperty(r *parsers.Reduction, prop *nodes.Property, modifierPos int) {
	if prop.Flags&nodes.ModifierAbstract != 0 {
		r.Emit(errs.New("Properties cannot be declared abstract", r.AttrsAt(modifierPos)))
	}
	if prop.Flags&nodes.ModifierFinal != 0 {
		r.Emit(errs.New("Properties cannot be declared final", r.AttrsAt(modifierPos)))
	}
}

func checkTryCatch(r *parsers.Reduction, try *nodes.TryCatch) {
	if len(try.Catches) == 0 && try.Finally == nil {
		r.Emit(errs.New("Cannot use try without catch or finally", try.Attributes()))
	}
}

func checkParam(r *parsers.Reduction, param *nodes.Param) {
	if param.Variadic && param.Default != nil {
		r.Emit(errs.New("Variadic parameter cannot have a default value", param.Default.Attributes()))
	}
}

func checkUseItem(r *parsers.Reduction, item *nodes.UseItem, namePos int) {
	if item.Alias != nil && item.Alias.IsSpecialClassName() {
		r.Emit(errs.New(
			fmt.Sprintf("Cannot use %s as %s because '%s' is a special class name", item.Name.Name, item.Alias.Name, item.Alias.Name),
			r.AttrsAt(namePos),
		))
	}
}

func checkModifier(r *parsers.Reduction, a, b int, modifierPos int) {
	if err := nodes.VerifyModifier(a, b); err != nil {
		r.Emit(errs.New(err.Error(), r.AttrsAt(modifierPos)))
	}
}

func checkClassModifier(r *parsers.Reduction, a, b int, modifierPos int) {
	if err := nodes.VerifyClassModifier(a, b); err != nil {
		r.Emit(errs.New(err.Error(), r.AttrsAt(modifierPos)))
	}
}
